// Package view turns catalog records into renderer-agnostic card
// view-models.
package view

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"time"

	"fan_showcase/internal/domain/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	FailedImageText = "图片加载失败"

	sourcePrefix  = "出自："
	updatedPrefix = "最后更新："
	statusPrefix  = "状态："
)

const (
	KindGallery   = "gallery"
	KindGame      = "game"
	KindEvent     = "event"
	KindCharacter = "character"
	KindComic     = "comic"
)

// AssetResolver maps an image reference to the URL the page should load
// and reports whether the asset exists.
type AssetResolver interface {
	Resolve(ref string) (url string, ok bool)
}

// Image is a card image after placeholder and asset resolution.
type Image struct {
	Src         string `json:"src"`
	Hover       string `json:"hover,omitempty"`
	Alt         string `json:"alt"`
	Lazy        bool   `json:"lazy"`
	Placeholder bool   `json:"placeholder"`
	Failed      bool   `json:"failed"`
}

// Card is the view-model of one rendered record.
type Card struct {
	Kind    string          `json:"kind"`
	Index   int             `json:"index"`
	ID      int             `json:"id"`
	Title   string          `json:"title"`
	Image   Image           `json:"image"`
	Tags    []string        `json:"tags,omitempty"`
	Line    string          `json:"line,omitempty"`
	Caption string          `json:"caption,omitempty"`
	BioHTML string          `json:"bio_html,omitempty"`
	Details []models.Detail `json:"details,omitempty"`
}

// Sections holds the cards of every section in display order.
type Sections struct {
	Gallery    []Card `json:"gallery"`
	Games      []Card `json:"games"`
	Events     []Card `json:"events"`
	Characters []Card `json:"characters"`
	Comics     []Card `json:"comics"`
}

type Builder struct {
	assets       AssetResolver
	placeholders []string
	md           goldmark.Markdown
}

func NewBuilder(assets AssetResolver, placeholders []string) *Builder {
	return &Builder{
		assets:       assets,
		placeholders: placeholders,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Build renders every section of the catalog.
func (b *Builder) Build(c models.Catalog) Sections {
	return Sections{
		Gallery:    b.GalleryCards(c.Gallery),
		Games:      b.GameCards(c.Games),
		Events:     b.EventCards(c.Events),
		Characters: b.CharacterCards(c.Characters),
		Comics:     b.ComicCards(c.Comics),
	}
}

func (b *Builder) GalleryCards(items []models.GalleryItem) []Card {
	cards := make([]Card, 0, len(items))
	for i, item := range items {
		cards = append(cards, Card{
			Kind:    KindGallery,
			Index:   i,
			ID:      item.ID,
			Title:   item.Title,
			Image:   b.image(item.Image, item.Title, i),
			Line:    sourcePrefix + item.Source,
			Caption: fmt.Sprintf("%s (%s%s)", item.Title, sourcePrefix, item.Source),
		})
	}
	return cards
}

func (b *Builder) GameCards(entries []models.GameEntry) []Card {
	sorted := SortByUpdated(entries, func(e models.GameEntry) string { return e.Updated })

	cards := make([]Card, 0, len(sorted))
	for i, entry := range sorted {
		img := b.image(entry.Image.Main, entry.Title+"图标", i)
		if entry.Image.Hover != "" && !img.Failed {
			if url, ok := b.resolve(entry.Image.Hover); ok {
				img.Hover = url
			}
		}

		cards = append(cards, Card{
			Kind:  KindGame,
			Index: i,
			ID:    entry.ID,
			Title: entry.Title,
			Image: img,
			Tags:  entry.Type,
			Line:  updatedPrefix + entry.Updated,
		})
	}
	return cards
}

func (b *Builder) EventCards(entries []models.EventEntry) []Card {
	sorted := SortByUpdated(entries, func(e models.EventEntry) string { return e.Status })

	cards := make([]Card, 0, len(sorted))
	for i, entry := range sorted {
		cards = append(cards, Card{
			Kind:  KindEvent,
			Index: i,
			ID:    entry.ID,
			Title: entry.Title,
			Image: b.image(entry.Image, entry.Title+"图标", i),
			Tags:  entry.Type,
			Line:  statusPrefix + entry.Status,
		})
	}
	return cards
}

func (b *Builder) CharacterCards(profiles []models.CharacterProfile) []Card {
	cards := make([]Card, 0, len(profiles))
	for i, p := range profiles {
		cards = append(cards, Card{
			Kind:    KindCharacter,
			Index:   i,
			ID:      p.ID,
			Title:   p.Name,
			Image:   b.image(p.Image, p.Name, i),
			BioHTML: b.markdown(p.Bio),
			Details: p.Details,
		})
	}
	return cards
}

func (b *Builder) ComicCards(comics []models.ComicEntry) []Card {
	sorted := SortComics(comics)

	cards := make([]Card, 0, len(sorted))
	for i, c := range sorted {
		cards = append(cards, Card{
			Kind:  KindComic,
			Index: i,
			ID:    c.ID,
			Title: c.Title,
			Image: b.image(c.Image, c.Title+"封面", i),
			Tags:  c.Type,
			Line:  updatedPrefix + c.Updated,
		})
	}
	return cards
}

// SortComics returns comics in display order.
func SortComics(comics []models.ComicEntry) []models.ComicEntry {
	return SortByUpdated(comics, func(c models.ComicEntry) string { return c.Updated })
}

// PageImage resolves a comic page reference the same way card images are
// resolved, without placeholder substitution.
func (b *Builder) PageImage(ref, alt string) Image {
	img := Image{Src: ref, Alt: alt}
	url, ok := b.resolve(ref)
	if !ok {
		img.Failed = true
		img.Alt = FailedImageText
		return img
	}
	img.Src = url
	return img
}

func (b *Builder) image(ref, alt string, index int) Image {
	img := Image{Alt: alt, Lazy: true}

	if ref == "" {
		ref = Placeholder(b.placeholders, index)
		img.Placeholder = true
	}

	url, ok := b.resolve(ref)
	if !ok {
		img.Src = ref
		img.Failed = true
		img.Alt = FailedImageText
		return img
	}

	img.Src = url
	return img
}

func (b *Builder) resolve(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if b.assets == nil {
		return ref, true
	}
	return b.assets.Resolve(ref)
}

func (b *Builder) markdown(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := b.md.Convert([]byte(src), &buf); err != nil {
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	return buf.String()
}

// Placeholder picks the fallback image for the card at index.
func Placeholder(placeholders []string, index int) string {
	if len(placeholders) == 0 {
		return ""
	}

	i := index % len(placeholders)
	if i < 0 {
		i += len(placeholders)
	}
	return placeholders[i]
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"2006-01-02 15:04:05",
}

// ParseDate interprets an "updated" value as a date.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByUpdated returns a copy of items ordered newest first. The sort is
// stable: equal dates keep input order, and values that are not dates keep
// input order after all dated items.
func SortByUpdated[T any](items []T, updated func(T) string) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return compareUpdated(updated(a), updated(b))
	})
	return sorted
}

func compareUpdated(a, b string) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)

	switch {
	case okA && okB:
		return tb.Compare(ta)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
