package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(1, 1, "xyz")

	got := RenderScreen(s)
	want := "ab   \n xyz "
	if got != want {
		t.Errorf("RenderScreen() = %q, want %q", got, want)
	}
}

func TestRenderScreenColoredRuns(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextColor(0, 0, "##", core.ColorRed)
	s.DrawTextColor(2, 0, "==", core.ColorBrightCyan)

	got := RenderScreen(s)
	if !strings.Contains(got, "##") || !strings.Contains(got, "==") {
		t.Errorf("colored runs should keep their text together: %q", got)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("single row rendered with a newline: %q", got)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(250)).Render("x"); got != "x" {
		t.Errorf("unknown color should render unstyled, got %q", got)
	}
}
