package models

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// GalleryItem представляет работу из раздела фан-творчества
type GalleryItem struct {
	ID     int    `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Source string `json:"source" yaml:"source"` // Оригинальное произведение
	Image  string `json:"image" yaml:"image"`
}

// GameEntry представляет инди-игру
type GameEntry struct {
	ID      int      `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Type    TagList  `json:"type" yaml:"type"`
	Updated string   `json:"updated" yaml:"updated"` // Дата последнего обновления, обычно 2006-01-02
	Image   ImageRef `json:"image" yaml:"image"`
}

// EventEntry представляет мероприятие (only)
type EventEntry struct {
	ID     int     `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Type   TagList `json:"type" yaml:"type"`
	Status string  `json:"status" yaml:"status"` // Свободный текст: "已结束", "预热中" или дата
	Image  string  `json:"image" yaml:"image"`
}

// eventRecord is an event as it appears in source documents. Older
// documents keep the status under "updated".
type eventRecord struct {
	ID      int     `json:"id" yaml:"id"`
	Title   string  `json:"title" yaml:"title"`
	Type    TagList `json:"type" yaml:"type"`
	Status  string  `json:"status" yaml:"status"`
	Updated string  `json:"updated" yaml:"updated"`
	Image   string  `json:"image" yaml:"image"`
}

func (r eventRecord) entry() EventEntry {
	status := r.Status
	if status == "" {
		status = r.Updated
	}
	return EventEntry{
		ID:     r.ID,
		Title:  r.Title,
		Type:   r.Type,
		Status: status,
		Image:  r.Image,
	}
}

func (e *EventEntry) UnmarshalJSON(data []byte) error {
	var r eventRecord

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return err
	}

	*e = r.entry()
	return nil
}

func (e *EventEntry) UnmarshalYAML(value *yaml.Node) error {
	var r eventRecord
	if err := value.Decode(&r); err != nil {
		return err
	}

	*e = r.entry()
	return nil
}

// CharacterProfile представляет оригинального персонажа (OC)
type CharacterProfile struct {
	ID      int     `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Bio     string  `json:"bio" yaml:"bio"` // Markdown
	Image   string  `json:"image" yaml:"image"`
	Details Details `json:"details" yaml:"details"`
}

// ComicEntry представляет оригинальный комикс
type ComicEntry struct {
	ID      int      `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Type    TagList  `json:"type" yaml:"type"`
	Updated string   `json:"updated" yaml:"updated"`
	Image   string   `json:"image" yaml:"image"` // Обложка
	Pages   []string `json:"pages" yaml:"pages"`
}

// Catalog объединяет все разделы витрины
type Catalog struct {
	Gallery    []GalleryItem      `json:"gallery" yaml:"gallery"`
	Games      []GameEntry        `json:"games" yaml:"games"`
	Events     []EventEntry       `json:"events" yaml:"events"`
	Characters []CharacterProfile `json:"characters" yaml:"characters"`
	Comics     []ComicEntry       `json:"comics" yaml:"comics"`
}

// Size returns the total number of records across all sections.
func (c Catalog) Size() int {
	return len(c.Gallery) + len(c.Games) + len(c.Events) + len(c.Characters) + len(c.Comics)
}
