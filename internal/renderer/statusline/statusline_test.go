package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/fractalterm/internal/renderer/backend"
	"github.com/dshills/fractalterm/internal/renderer/core"
)

func TestMessageExpires(t *testing.T) {
	s := New()
	s.SetSnapshot(Snapshot{Family: "julia"})
	s.SetMessage("config reloaded", MessageInfo, 2)

	b := backend.NewNullBackend(60, 1)
	for i := 0; i < 2; i++ {
		s.Render(b, 0, 60)
		if !strings.Contains(b.Line(0), "config reloaded") {
			t.Fatalf("render %d: line %q missing message", i, b.Line(0))
		}
	}

	s.Render(b, 0, 60)
	if strings.Contains(b.Line(0), "config reloaded") {
		t.Errorf("message still shown after ttl: %q", b.Line(0))
	}
	if !strings.Contains(b.Line(0), "julia") {
		t.Errorf("line %q missing family", b.Line(0))
	}
	if s.Message() != "" {
		t.Errorf("Message() = %q, want empty", s.Message())
	}
}

func TestNarrowLineDropsTiming(t *testing.T) {
	s := New()
	s.SetSnapshot(Snapshot{Family: "mandelbrot"})

	b := backend.NewNullBackend(20, 1)
	s.Render(b, 0, 20)

	line := b.Line(0)
	if strings.Contains(line, "fps") {
		t.Errorf("narrow line %q should drop timing", line)
	}
	if !strings.HasPrefix(line, " mandelbrot") {
		t.Errorf("narrow line = %q, want family first", line)
	}
}

func TestDrawString(t *testing.T) {
	tests := []struct {
		name     string
		str      string
		maxWidth int
		want     string
		cols     int
	}{
		{"fits", "abc", 5, "abc  ", 3},
		{"truncates", "abcdef", 4, "abcd ", 4},
		{"wide rune padded", "日x", 5, "日 x  ", 3},
		{"wide rune dropped at edge", "a日", 2, "a    ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := backend.NewNullBackend(5, 1)
			cols := DrawString(b, 0, 0, tt.maxWidth, tt.str, core.DefaultStyle())
			if cols != tt.cols {
				t.Errorf("DrawString() = %d, want %d", cols, tt.cols)
			}
			if got := b.Line(0); got != tt.want {
				t.Errorf("Line(0) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMagnification(t *testing.T) {
	tests := []struct {
		m    float64
		want string
	}{
		{1, "1.00"},
		{250, "250"},
		{3.2e7, "3.2e+07"},
	}
	for _, tt := range tests {
		if got := formatMagnification(tt.m); got != tt.want {
			t.Errorf("formatMagnification(%g) = %q, want %q", tt.m, got, tt.want)
		}
	}
}
