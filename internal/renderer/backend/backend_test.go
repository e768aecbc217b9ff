package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/fractalterm/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(10, 4)

	cell := core.NewStyledCell('X', core.NewStyle(core.ColorWhite))
	b.SetCell(3, 2, cell)

	if got := b.GetCell(3, 2); got != cell {
		t.Errorf("GetCell(3, 2) = %+v, want %+v", got, cell)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); got != core.EmptyCell() {
		t.Errorf("out of bounds GetCell = %+v, want empty", got)
	}
}

func TestNullBackendFillAndText(t *testing.T) {
	b := NewNullBackend(4, 3)

	b.Fill(core.RectFromSize(1, 1, 5, 2), core.NewStyledCell('#', core.DefaultStyle()))

	want := "    \n ## \n ## "
	if got := b.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := b.Line(1); got != " ## " {
		t.Errorf("Line(1) = %q, want %q", got, " ## ")
	}
	if got := b.Line(7); got != "" {
		t.Errorf("Line(7) = %q, want empty", got)
	}

	b.Clear()
	if got := b.Line(1); got != "    " {
		t.Errorf("after Clear Line(1) = %q, want blanks", got)
	}
}

func TestNullBackendShows(t *testing.T) {
	b := NewNullBackend(2, 2)
	b.Show()
	b.Show()
	if b.Shows() != 2 {
		t.Errorf("Shows() = %d, want 2", b.Shows())
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Resize(40, 10)

	w, h := b.Size()
	if w != 40 || h != 10 {
		t.Errorf("Size() = (%d, %d), want (40, 10)", w, h)
	}

	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 40 || ev.Height != 10 {
		t.Errorf("PollEvent() = %+v, want resize 40x10", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'q'})

	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'q' {
		t.Errorf("PollEvent() = %+v, want key 'q'", ev)
	}
}

func TestNullBackendShutdownUnblocksPoll(t *testing.T) {
	b := NewNullBackend(80, 24)

	got := make(chan Event, 1)
	go func() { got <- b.PollEvent() }()

	b.Shutdown()
	b.Shutdown()

	select {
	case ev := <-got:
		if ev.Type != EventClosed {
			t.Errorf("PollEvent() after Shutdown = %v, want EventClosed", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("PollEvent did not return after Shutdown")
	}
}

func TestModMaskHas(t *testing.T) {
	m := ModShift | ModCtrl
	if !m.Has(ModShift) || !m.Has(ModCtrl) {
		t.Error("mask should contain shift and ctrl")
	}
	if m.Has(ModAlt) {
		t.Error("mask should not contain alt")
	}
}

func TestConvertEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Event
	}{
		{
			name: "rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone),
			want: Event{Type: EventKey, Key: KeyRune, Rune: 'w'},
		},
		{
			name: "arrow",
			ev:   tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift),
			want: Event{Type: EventKey, Key: KeyLeft, Mod: ModShift},
		},
		{
			name: "left click",
			ev:   tcell.NewEventMouse(5, 7, tcell.Button1, tcell.ModNone),
			want: Event{Type: EventMouse, MouseX: 5, MouseY: 7, MouseButton: MouseLeft},
		},
		{
			name: "wheel",
			ev:   tcell.NewEventMouse(1, 2, tcell.WheelDown, tcell.ModNone),
			want: Event{Type: EventMouse, MouseX: 1, MouseY: 2, MouseButton: MouseWheelDown},
		},
		{
			name: "resize",
			ev:   tcell.NewEventResize(120, 40),
			want: Event{Type: EventResize, Width: 120, Height: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertEvent(tt.ev)
			if got.Type != tt.want.Type || got.Key != tt.want.Key || got.Mod != tt.want.Mod ||
				got.MouseX != tt.want.MouseX || got.MouseY != tt.want.MouseY ||
				got.MouseButton != tt.want.MouseButton ||
				got.Width != tt.want.Width || got.Height != tt.want.Height {
				t.Errorf("convertEvent() = %+v, want %+v", got, tt.want)
			}
			if tt.want.Key == KeyRune && got.Rune != tt.want.Rune {
				t.Errorf("Rune = %q, want %q", got.Rune, tt.want.Rune)
			}
		})
	}
}

func TestKeyTablesRoundTrip(t *testing.T) {
	for k, tk := range toTcellKey {
		if back := fromTcellKey[tk]; back != k {
			t.Errorf("key %d -> %v -> %d", k, tk, back)
		}
	}
}

func TestConvertStyle(t *testing.T) {
	s := core.NewStyle(core.ColorFromRGB(10, 20, 30)).Bold()
	fg, bg, attrs := convertStyle(s).Decompose()

	r, g, b := fg.RGB()
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("foreground = (%d,%d,%d), want (10,20,30)", r, g, b)
	}
	if bg != tcell.ColorDefault {
		t.Errorf("background = %v, want default", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("bold attribute lost")
	}
}
