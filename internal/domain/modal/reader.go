package modal

import (
	"fmt"

	"fan_showcase/internal/domain/models"
)

// Reader is the paginated comic modal. The zero value is closed.
type Reader struct {
	Comic     *models.ComicEntry `json:"comic,omitempty"`
	PageIndex int                `json:"page_index"`
}

// Page is the render contract for the current page.
type Page struct {
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	Indicator string `json:"indicator"`
}

func (r Reader) Active() bool {
	return r.Comic != nil
}

// ScrollLocked reports whether background scrolling is suspended.
func (r Reader) ScrollLocked() bool {
	return r.Active()
}

// Open starts comic at its first page whatever was open before.
func (r Reader) Open(comic models.ComicEntry) Reader {
	return Reader{Comic: &comic, PageIndex: 0}
}

// Next moves forward one page; on the last page it does nothing.
func (r Reader) Next() Reader {
	if r.Comic != nil && r.PageIndex < len(r.Comic.Pages)-1 {
		r.PageIndex++
	}
	return r
}

// Prev moves back one page; on the first page it does nothing.
func (r Reader) Prev() Reader {
	if r.PageIndex > 0 {
		r.PageIndex--
	}
	return r
}

func (r Reader) Close() Reader {
	return Reader{}
}

// HandleKey applies a key press. Keys are ignored while closed.
func (r Reader) HandleKey(k Key) Reader {
	if !r.Active() {
		return r
	}

	switch k {
	case KeyArrowLeft:
		return r.Prev()
	case KeyArrowRight:
		return r.Next()
	case KeyEscape:
		return r.Close()
	default:
		return r
	}
}

// HandlePointer applies a click. Clicks inside the page area never close
// the reader.
func (r Reader) HandlePointer(t Target) Reader {
	if !r.Active() {
		return r
	}

	switch t {
	case TargetBackdrop, TargetClose:
		return r.Close()
	default:
		return r
	}
}

// Page returns the current page, or false when nothing can be rendered.
func (r Reader) Page() (Page, bool) {
	if r.Comic == nil || r.PageIndex < 0 || r.PageIndex >= len(r.Comic.Pages) {
		return Page{}, false
	}

	n := len(r.Comic.Pages)
	return Page{
		Src:       r.Comic.Pages[r.PageIndex],
		Alt:       fmt.Sprintf("%s - 第%d页", r.Comic.Title, r.PageIndex+1),
		Indicator: fmt.Sprintf("%d / %d", r.PageIndex+1, n),
	}, true
}
