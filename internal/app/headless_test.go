package app

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/fractalterm/internal/config"
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/poi"
)

func TestRenderHeadless(t *testing.T) {
	var buf bytes.Buffer
	err := RenderHeadless(config.Default(), HeadlessOptions{Width: 24, Height: 8}, &buf)
	if err != nil {
		t.Fatalf("RenderHeadless() error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want 8", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 24 {
			t.Errorf("line %d width = %d, want 24", i, n)
		}
	}
}

func TestRenderHeadlessHistogram(t *testing.T) {
	var buf bytes.Buffer
	opts := HeadlessOptions{Width: 40, Height: 10, Frames: 5, Histogram: true}
	if err := RenderHeadless(config.Default(), opts, &buf); err != nil {
		t.Fatalf("RenderHeadless() error: %v", err)
	}
	if !strings.Contains(buf.String(), "log escape counts  floor") {
		t.Errorf("output missing histogram caption:\n%s", buf.String())
	}
}

func TestRenderHeadlessTourMoves(t *testing.T) {
	var home, toured bytes.Buffer
	if err := RenderHeadless(config.Default(), HeadlessOptions{Width: 30, Height: 10}, &home); err != nil {
		t.Fatalf("RenderHeadless() error: %v", err)
	}
	opts := HeadlessOptions{Width: 30, Height: 10, Frames: 200, POI: "1"}
	if err := RenderHeadless(config.Default(), opts, &toured); err != nil {
		t.Fatalf("RenderHeadless() error: %v", err)
	}
	if home.String() == toured.String() {
		t.Error("touring to a point of interest should change the frame")
	}
}

func TestRenderHeadlessTourByName(t *testing.T) {
	var byName, bySlot bytes.Buffer
	named := HeadlessOptions{Width: 30, Height: 10, Frames: 50, Julia: true, POI: "rabbit"}
	if err := RenderHeadless(config.Default(), named, &byName); err != nil {
		t.Fatalf("RenderHeadless() error: %v", err)
	}
	slot := HeadlessOptions{Width: 30, Height: 10, Frames: 50, Julia: true, POI: "2"}
	if err := RenderHeadless(config.Default(), slot, &bySlot); err != nil {
		t.Fatalf("RenderHeadless() error: %v", err)
	}
	if byName.String() != bySlot.String() {
		t.Error("touring to \"rabbit\" should match touring to seed 2")
	}
}

func TestRenderHeadlessErrors(t *testing.T) {
	tests := []struct {
		name string
		opts HeadlessOptions
		want error
	}{
		{"zero size", HeadlessOptions{Width: 0, Height: 5}, fractal.ErrInvalidDimensions},
		{"poi out of range", HeadlessOptions{Width: 10, Height: 5, POI: "11"}, poi.ErrUnknown},
		{"poi name unmatched", HeadlessOptions{Width: 10, Height: 5, POI: "zzzz"}, poi.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RenderHeadless(config.Default(), tt.opts, &bytes.Buffer{})
			if !errors.Is(err, tt.want) {
				t.Errorf("RenderHeadless() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRenderHeadlessPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	opts := HeadlessOptions{Width: 16, Height: 6, Julia: true, PNGPath: path}
	if err := RenderHeadless(config.Default(), opts, &bytes.Buffer{}); err != nil {
		t.Fatalf("RenderHeadless() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 6 {
		t.Errorf("image = %dx%d, want 16x6", b.Dx(), b.Dy())
	}
}
