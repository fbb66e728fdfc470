package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenu(t *testing.T) {
	var m Menu
	assert.False(t, m.Open)
	assert.Equal(t, "/?menu=open", m.ToggleHref())

	m = m.Toggle()
	assert.True(t, m.Open)
	assert.Equal(t, "/", m.ToggleHref())
	assert.Equal(t, "/#comics", m.LinkHref("comics"))

	m = m.LinkClicked()
	assert.False(t, m.Open)
}

func TestEase(t *testing.T) {
	tests := []struct {
		name     string
		t        float64
		expected float64
	}{
		{name: "start", t: 0, expected: 100},
		{name: "quarter", t: 200, expected: 125},
		{name: "middle", t: 400, expected: 200},
		{name: "three quarters", t: 600, expected: 275},
		{name: "end", t: 800, expected: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Ease(tt.t, 100, 200, 800), 1e-9)
		})
	}

	assert.Equal(t, 300.0, Ease(5, 100, 200, 0))
}
