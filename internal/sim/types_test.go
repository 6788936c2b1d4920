package sim

import (
	"math"
	"testing"
)

func TestFrame_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		tip   Tip
		valid bool
	}{
		{"no plot", Tip{}, true},
		{"no plot with NaN", Tip{X: math.NaN()}, true},
		{"normal", Tip{X: 1, Y: 2, Valid: true}, true},
		{"with NaN", Tip{X: 1, Y: math.NaN(), Valid: true}, false},
		{"with +Inf", Tip{X: math.Inf(1), Y: 0, Valid: true}, false},
		{"with -Inf", Tip{X: 0, Y: math.Inf(-1), Valid: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Frame{Tip: tt.tip}).IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		duration, fps float64
		expected      int
	}{
		{1, 10, 11},
		{0.7, 30, 22},
		{29.7, 15, 446},
		{0, 30, 1},
	}

	for _, tt := range tests {
		if got := FrameCount(tt.duration, tt.fps); got != tt.expected {
			t.Errorf("FrameCount(%v, %v) = %d, want %d", tt.duration, tt.fps, got, tt.expected)
		}
	}
}
