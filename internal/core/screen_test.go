package core

import (
	"strings"
	"testing"
)

func TestScreenStartsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if want := "      \n      \n      "; s.String() != want {
		t.Errorf("String() = %q, expected %q", s.String(), want)
	}
}

func TestScreenSetClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(3, 1, '█', ColorPink)
	s.Set(-1, 0, 'x')
	s.Set(4, 0, 'x')
	s.Set(0, 2, 'x')

	if got := s.GetCell(3, 1); got.Rune != '█' || got.Color != ColorPink {
		t.Errorf("GetCell(3, 1) = %+v, expected pink block", got)
	}
	if strings.ContainsRune(s.String(), 'x') {
		t.Errorf("out-of-bounds writes leaked: %q", s.String())
	}
	if got := s.GetCell(9, 9); got.Rune != ' ' || got.Color != ColorDefault {
		t.Errorf("GetCell(9, 9) = %+v, expected blank", got)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 1)
	s.DrawTextColored(0, 0, "abc", ColorRed)
	s.Clear()

	for x := range 3 {
		if c := s.GetCell(x, 0); c.Rune != ' ' || c.Color != ColorDefault {
			t.Errorf("cell %d = %+v after Clear, expected blank", x, c)
		}
	}
}

func TestScreenText(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawText(9, 0, "clipped")
	s.DrawTextCentered(1, "ok!")

	if got := s.Row(0); got != "         cli" {
		t.Errorf("Row(0) = %q, expected text clipped at the edge", got)
	}
	if got := s.Row(1); got != "    ok!     " {
		t.Errorf("Row(1) = %q, expected centered text", got)
	}
	if got := s.Row(5); got != strings.Repeat(" ", 12) {
		t.Errorf("Row(5) = %q, expected blank row", got)
	}
}

func TestScreenDrawRectColored(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawRectColored(NewRect(1, 1, 2, 1), '░', ColorGray)

	if got := s.Row(1); got != " ░░  " {
		t.Errorf("Row(1) = %q, expected two filled cells", got)
	}
	if s.GetCell(2, 1).Color != ColorGray {
		t.Error("filled cell should carry the color")
	}
	if s.Row(0) != "     " || s.Row(2) != "     " {
		t.Error("fill leaked outside the rect")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBoxColored(NewRect(0, 0, 5, 4), ColorCyan)

	want := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("Row(%d) = %q, expected %q", y, got, row)
		}
	}
	if s.GetCell(4, 3).Color != ColorCyan {
		t.Error("box corner should be cyan")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 2x3", s.Width(), s.Height())
	}
	if s.Row(0) != "ab" || s.Row(2) != "  " {
		t.Errorf("rows = %q, %q, expected kept prefix and blank new row", s.Row(0), s.Row(2))
	}
}

func TestScreenBlit(t *testing.T) {
	canvas := NewScreen(3, 2)
	canvas.DrawTextColored(0, 0, "xyz", ColorGreen)

	dst := NewScreen(5, 2)
	dst.Blit(canvas, 3, 1)

	if got := dst.Row(1); got != "   xy" {
		t.Errorf("Row(1) = %q, expected canvas clipped at the right", got)
	}
	if dst.GetCell(3, 1).Color != ColorGreen {
		t.Error("blit should keep colors")
	}
	if dst.Row(0) != "     " {
		t.Error("blit wrote above its origin")
	}
}

func TestScreenDrawLine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec
		want []Coord
	}{
		{"point", V(2, 1), V(2, 1), []Coord{C(2, 1)}},
		{"horizontal", V(0, 0), V(3, 0), []Coord{C(0, 0), C(1, 0), C(2, 0), C(3, 0)}},
		{"diagonal", V(0, 0), V(2, 2), []Coord{C(0, 0), C(1, 1), C(2, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(4, 3)
			s.DrawLine(tt.a, tt.b, '·', ColorCyan)

			drawn := 0
			for y := range 3 {
				for x := range 4 {
					if s.Get(x, y) == '·' {
						drawn++
					}
				}
			}
			if drawn != len(tt.want) {
				t.Errorf("drew %d cells, expected %d", drawn, len(tt.want))
			}
			for _, c := range tt.want {
				if s.Get(c.X, c.Y) != '·' {
					t.Errorf("cell %v not drawn", c)
				}
			}
		})
	}
}
