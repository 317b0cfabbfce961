package tui

import (
	"strings"
	"testing"
)

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name   string
		ratio  float64
		width  int
		filled int
	}{
		{"empty", 0, 10, 0},
		{"half", 0.5, 10, 5},
		{"full", 1, 10, 10},
		{"over", 1.5, 10, 10},
		{"negative", -0.2, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := RenderProgressBar(tt.ratio, tt.width)
			if got := strings.Count(bar, ProgressFilled); got != tt.filled {
				t.Errorf("filled cells = %d, want %d", got, tt.filled)
			}
			if got := strings.Count(bar, ProgressEmpty); got != tt.width-tt.filled {
				t.Errorf("empty cells = %d, want %d", got, tt.width-tt.filled)
			}
		})
	}
}

func TestRenderProgressBarDefaultWidth(t *testing.T) {
	bar := RenderProgressBar(0, 0)
	if got := strings.Count(bar, ProgressEmpty); got != 20 {
		t.Errorf("default width = %d, want 20", got)
	}
}

func TestGetPriorityStyleFallsBack(t *testing.T) {
	for name := range PriorityColors {
		if GetPriorityStyle(name).GetForeground() != PriorityColors[name] {
			t.Errorf("style for %q does not use its palette color", name)
		}
	}
	if GetPriorityStyle("unknown").GetForeground() != ColorGray {
		t.Error("unknown priority should fall back to gray")
	}
}
