package view

// ReaderView is what the page and the API render for the comic reader.
type ReaderView struct {
	Open      bool        `json:"open"`
	ComicID   int         `json:"comic_id,omitempty"`
	Title     string      `json:"title,omitempty"`
	PageIndex int         `json:"page_index"`
	PageCount int         `json:"page_count"`
	Page      *ReaderPage `json:"page,omitempty"`
}

type ReaderPage struct {
	Image     Image  `json:"image"`
	Indicator string `json:"indicator"`
}

func (v ReaderView) HasPrev() bool {
	return v.Open && v.PageIndex > 0
}

func (v ReaderView) HasNext() bool {
	return v.Open && v.PageIndex < v.PageCount-1
}
