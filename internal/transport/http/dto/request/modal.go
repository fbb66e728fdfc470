package request

// OpenRequest выбирает карточку по позиции на странице.
type OpenRequest struct {
	Index *int `json:"index" form:"index" validate:"required,min=0"`
}

// KeyRequest несёт имя клавиши, как его сообщает браузер. Неизвестные
// клавиши допустимы и ничего не меняют.
type KeyRequest struct {
	Key string `json:"key" form:"key" validate:"required,max=32"`
}

type PointerRequest struct {
	Target string `json:"target" form:"target" validate:"required,oneof=backdrop content close"`
}

type ThemeRequest struct {
	Theme string `json:"theme" form:"theme" validate:"required"`
}

type PointRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

type ViewportRequest struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}
