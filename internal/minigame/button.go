package minigame

import (
	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// Button is a clickable bracketed label in puzzle-local cells.
type Button struct {
	Label string
	Rect  core.Rect
	Color core.Color
}

// NewButton places a button with its top-left corner at (x, y).
// The hit box covers the label plus its brackets.
func NewButton(label string, x, y int, color core.Color) Button {
	return Button{
		Label: label,
		Rect:  core.NewRect(x, y, len([]rune(label))+2, 1),
		Color: color,
	}
}

// Contains reports whether pos falls on the button.
func (b Button) Contains(pos core.Vec) bool {
	return b.Rect.ContainsVec(pos)
}

// Draw renders the button as "[Label]".
func (b Button) Draw(dst *core.Screen) {
	dst.DrawTextColored(b.Rect.X, b.Rect.Y, "["+b.Label+"]", b.Color)
}
