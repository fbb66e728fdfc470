// Package nav holds the page navigation helpers: the collapsible menu and
// anchor scrolling.
package nav

// DefaultOffset is the height of the fixed navigation bar. Anchor targets
// scroll to their top minus this offset.
const DefaultOffset = 80

// Section is an anchor in the page navigation.
type Section struct {
	Anchor string `json:"anchor"`
	Label  string `json:"label"`
}

// Sections are the page sections in navigation order.
var Sections = []Section{
	{Anchor: "doujin", Label: "同人创作"},
	{Anchor: "games", Label: "独立游戏"},
	{Anchor: "only", Label: "only活动"},
	{Anchor: "oc", Label: "原创OC"},
	{Anchor: "comics", Label: "原创漫画"},
}

// Menu is the hamburger menu.
type Menu struct {
	Open bool `json:"open"`
}

func (m Menu) Toggle() Menu {
	return Menu{Open: !m.Open}
}

// LinkClicked closes the menu.
func (m Menu) LinkClicked() Menu {
	return Menu{}
}

// ToggleHref is the page link that renders the menu toggled.
func (m Menu) ToggleHref() string {
	if m.Toggle().Open {
		return "/?menu=open"
	}
	return "/"
}

// LinkHref is the page link for an anchor; following it closes the menu.
func (m Menu) LinkHref(anchor string) string {
	if m.LinkClicked().Open {
		return "/?menu=open#" + anchor
	}
	return "/#" + anchor
}

// Ease is the ease-in-out quadratic curve of the smooth anchor scroll:
// position at elapsed time t for a scroll from b by c over duration d.
func Ease(t, b, c, d float64) float64 {
	if d <= 0 {
		return b + c
	}

	t /= d / 2
	if t < 1 {
		return c/2*t*t + b
	}
	t--
	return -c/2*(t*(t-2)-1) + b
}
