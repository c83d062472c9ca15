package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoz/internal/ui/theme"
)

// Bar is a horizontal meter such as the daily goal or one histogram day.
type Bar struct {
	Label string
	Value int
	Max   int
	Width int

	// ShowCount appends "value/max".
	ShowCount bool
}

// Filled returns how many of the bar's cells are filled.
func (b Bar) Filled() int {
	width := max(b.Width, 1)
	if b.Max <= 0 {
		return 0
	}
	filled := width * b.Value / b.Max
	return max(0, min(filled, width))
}

// View renders the bar.
func (b Bar) View() string {
	var sb strings.Builder
	if b.Label != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label))
		sb.WriteString("  ")
	}

	width := max(b.Width, 1)
	filled := b.Filled()
	sb.WriteString(theme.BarFilled.Render(strings.Repeat(" ", filled)))
	sb.WriteString(theme.BarEmpty.Render(strings.Repeat(" ", width-filled)))

	if b.ShowCount {
		sb.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d/%d", b.Value, b.Max)))
	}
	return sb.String()
}
