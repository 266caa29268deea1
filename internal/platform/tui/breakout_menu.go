package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// LevelSelectModel lets users choose the starting level of a run.
// It is embedded in the menu and driven by menu actions.
type LevelSelectModel struct {
	levels []breakout.Level
	cursor int
	width  int
}

// NewLevelSelectModel lists the levels new games will use.
func NewLevelSelectModel(width int) LevelSelectModel {
	return LevelSelectModel{
		levels: breakout.ActiveLevels(),
		width:  width,
	}
}

// Update moves the cursor. It reports whether a level was chosen and
// whether the user backed out.
func (m LevelSelectModel) Update(action MenuAction) (LevelSelectModel, bool, bool) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		return m, true, false
	case MenuActionBack:
		return m, false, true
	}
	return m, false, false
}

// Level returns the 0-based index under the cursor.
func (m LevelSelectModel) Level() int {
	return m.cursor
}

// View renders the level list.
func (m LevelSelectModel) View(title string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select starting level:", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		name := lvl.Name
		if name == "" {
			name = "Level"
		}

		line := fmt.Sprintf("%s%2d. %-10s %s", cursor, i+1, name, breakout.FormatClock(lvl.TimeLimit))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}
