package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	want := strings.Repeat("      \n", 2) + "      "
	if got := s.String(); got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want []string
	}{
		{
			name: "text clipped at the edge",
			draw: func(s *Screen) { s.DrawText(3, 0, "abcd") },
			want: []string{"   ab", "     ", "     "},
		},
		{
			name: "negative start clips the head",
			draw: func(s *Screen) { s.DrawText(-2, 1, "xyz") },
			want: []string{"     ", "z    ", "     "},
		},
		{
			name: "centered text",
			draw: func(s *Screen) { s.DrawTextCentered(2, "hi") },
			want: []string{"     ", "     ", " hi  "},
		},
		{
			name: "filled rect",
			draw: func(s *Screen) { s.DrawRect(NewRect(1, 0, 3, 2), '#') },
			want: []string{" ### ", " ### ", "     "},
		},
		{
			name: "box outline",
			draw: func(s *Screen) { s.DrawBox(NewRect(0, 0, 5, 3)) },
			want: []string{"┌───┐", "│   │", "└───┘"},
		},
		{
			name: "horizontal line",
			draw: func(s *Screen) { s.DrawHLine(1, 1, 10, '=') },
			want: []string{"     ", " ====", "     "},
		},
		{
			name: "out of bounds writes ignored",
			draw: func(s *Screen) {
				s.Set(-1, 0, 'x')
				s.Set(5, 0, 'x')
				s.Set(0, 3, 'x')
			},
			want: []string{"     ", "     ", "     "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(5, 3)
			tt.draw(s)
			if got := s.String(); got != strings.Join(tt.want, "\n") {
				t.Errorf("got\n%s\nexpected\n%s", got, strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColor(0, 0, "abcd", ColorGreen)
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	want := "ab\nef\n  "
	if got := s.String(); got != want {
		t.Errorf("after shrink String() = %q, expected %q", got, want)
	}
	if c := s.GetCell(1, 0); c.Color != ColorGreen {
		t.Errorf("resize should keep colors, got %+v", c)
	}

	s.Resize(3, 1)
	if got := s.String(); got != "ab " {
		t.Errorf("after second resize String() = %q", got)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColor(4, 1, '█', ColorOrange)
	if c := s.GetCell(4, 1); c.Rune != '█' || c.Color != ColorOrange {
		t.Errorf("GetCell(4, 1) = %+v, expected orange █", c)
	}

	s.Set(4, 1, 'x')
	if c := s.GetCell(4, 1); c.Color != ColorDefault {
		t.Errorf("Set should clear the color, got %v", c.Color)
	}

	s.DrawTextColor(1, 0, "0:31", ColorRed)
	for x := 1; x < 5; x++ {
		if s.GetCell(x, 0).Color != ColorRed {
			t.Errorf("cell %d should be red", x)
		}
	}
	if s.GetCell(0, 0).Color != ColorDefault || s.GetCell(5, 0).Color != ColorDefault {
		t.Error("DrawTextColor colored outside its text")
	}

	if c := s.GetCell(-1, 0); c != blank {
		t.Errorf("out of bounds GetCell = %+v, expected blank", c)
	}

	s.Clear()
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("after Clear, cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}
