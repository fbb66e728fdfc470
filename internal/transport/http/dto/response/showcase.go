package response

import (
	"fan_showcase/internal/domain/nav"
	"fan_showcase/internal/domain/view"
)

type CatalogResponse struct {
	Nav      []nav.Section `json:"nav"`
	Sections view.Sections `json:"sections"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}
