package components

import (
	"strconv"
	"strings"

	"github.com/abhisek/lingoz/internal/scoring"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

// Stars renders n filled stars out of scoring.MaxStars.
func Stars(n int) string {
	n = max(0, min(n, scoring.MaxStars))
	return theme.StarOn.Render(strings.Repeat("★", n)) +
		theme.StarOff.Render(strings.Repeat("☆", scoring.MaxStars-n))
}

// Choices renders multiple-choice options numbered from 1.
func Choices(options []string) string {
	var sb strings.Builder
	for i, opt := range options {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(theme.Hint.Render(strconv.Itoa(i+1) + ")"))
		sb.WriteByte(' ')
		sb.WriteString(opt)
	}
	return sb.String()
}
