package components

import (
	"strings"
	"testing"
)

func TestBar_Filled(t *testing.T) {
	tests := []struct {
		bar  Bar
		want int
	}{
		{Bar{Value: 0, Max: 15, Width: 10}, 0},
		{Bar{Value: 15, Max: 15, Width: 10}, 10},
		{Bar{Value: 30, Max: 15, Width: 10}, 10},
		{Bar{Value: 6, Max: 12, Width: 10}, 5},
		{Bar{Value: 3, Max: 0, Width: 10}, 0},
		{Bar{Value: -2, Max: 5, Width: 10}, 0},
	}
	for _, tt := range tests {
		if got := tt.bar.Filled(); got != tt.want {
			t.Errorf("Filled(%+v) = %d, want %d", tt.bar, got, tt.want)
		}
	}
}

func TestBar_ViewShowsCount(t *testing.T) {
	v := Bar{Label: "Today", Value: 4, Max: 15, Width: 5, ShowCount: true}.View()
	if !strings.Contains(v, "Today") || !strings.Contains(v, "4/15") {
		t.Errorf("View() = %q", v)
	}
}

func TestStars(t *testing.T) {
	for n, want := range map[int]int{-1: 0, 0: 0, 2: 2, 3: 3, 9: 3} {
		got := Stars(n)
		if c := strings.Count(got, "★"); c != want {
			t.Errorf("Stars(%d) has %d filled, want %d", n, c, want)
		}
		if c := strings.Count(got, "☆"); c != 3-want {
			t.Errorf("Stars(%d) has %d empty, want %d", n, c, 3-want)
		}
	}
}

func TestChoices(t *testing.T) {
	got := Choices([]string{"Hola", "Adiós"})
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "1)") || !strings.Contains(lines[0], "Hola") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2)") || !strings.Contains(lines[1], "Adiós") {
		t.Errorf("line 1 = %q", lines[1])
	}
}
