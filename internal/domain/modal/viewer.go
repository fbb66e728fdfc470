package modal

// Viewer is the single image modal.
type Viewer struct {
	Active  bool   `json:"active"`
	Src     string `json:"src,omitempty"`
	Caption string `json:"caption,omitempty"`
	Failed  bool   `json:"failed,omitempty"` // изображение недоступно, показывается заглушка
}

// Open shows src with caption. Opening an open viewer replaces what it
// shows.
func (v Viewer) Open(src, caption string) Viewer {
	return Viewer{Active: true, Src: src, Caption: caption}
}

// OpenFailed shows the failure marker instead of an image.
func (v Viewer) OpenFailed(caption string) Viewer {
	return Viewer{Active: true, Caption: caption, Failed: true}
}

func (v Viewer) Close() Viewer {
	return Viewer{}
}

// ScrollLocked reports whether background scrolling is suspended.
func (v Viewer) ScrollLocked() bool {
	return v.Active
}

func (v Viewer) HandleKey(k Key) Viewer {
	if v.Active && k == KeyEscape {
		return v.Close()
	}
	return v
}

func (v Viewer) HandlePointer(t Target) Viewer {
	if !v.Active {
		return v
	}
	switch t {
	case TargetBackdrop, TargetClose:
		return v.Close()
	default:
		return v
	}
}
