// Package statusline renders the heads-up display row shown over the fractal.
package statusline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/dshills/fractalterm/internal/renderer/backend"
	"github.com/dshills/fractalterm/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// Snapshot is the view state shown on the left side of the line.
type Snapshot struct {
	Family        string
	CenterX       float64
	CenterY       float64
	Magnification float64
	// Rotation in radians.
	Rotation float64
	Floor    float64
	Ceil     float64
	Auto     bool
	Touring  bool
}

// Timing is the frame statistics shown on the right side of the line.
type Timing struct {
	FPS     float64
	Compute time.Duration
	Render  time.Duration
}

// StatusLine renders a single row of view state and frame timing.
type StatusLine struct {
	snap   Snapshot
	timing Timing

	message     string
	messageType MessageType
	messageTTL  int

	barStyle   core.Style
	labelStyle core.Style
	errStyle   core.Style
}

// New creates a new status line.
func New() *StatusLine {
	bg := core.ColorFromRGB(0x1a, 0x1c, 0x2c)
	return &StatusLine{
		barStyle:   core.NewStyle(core.ColorWhite).WithBackground(bg),
		labelStyle: core.NewStyle(core.ColorFromRGB(0xf4, 0xf4, 0xa0)).WithBackground(bg).Bold(),
		errStyle:   core.NewStyle(core.ColorFromRGB(0xff, 0x55, 0x55)).WithBackground(bg).Bold(),
	}
}

// SetSnapshot updates the displayed view state.
func (s *StatusLine) SetSnapshot(snap Snapshot) {
	s.snap = snap
}

// SetTiming updates the displayed frame statistics.
func (s *StatusLine) SetTiming(t Timing) {
	s.timing = t
}

// SetMessage displays msg in place of the view state for ttl renders.
func (s *StatusLine) SetMessage(msg string, msgType MessageType, ttl int) {
	s.message = msg
	s.messageType = msgType
	s.messageTTL = ttl
}

// Message returns the active message, if any.
func (s *StatusLine) Message() string {
	return s.message
}

// Left formats the view state.
func (s *StatusLine) Left() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, " %s  %+.10f %+.10fi  x%s  %.1f°  [%.0f, %.0f]",
		s.snap.Family, s.snap.CenterX, s.snap.CenterY,
		formatMagnification(s.snap.Magnification),
		s.snap.Rotation*180/math.Pi,
		s.snap.Floor, s.snap.Ceil)
	if s.snap.Auto {
		sb.WriteString(" auto")
	}
	if s.snap.Touring {
		sb.WriteString(" tour")
	}
	return sb.String()
}

// Right formats the frame statistics.
func (s *StatusLine) Right() string {
	return fmt.Sprintf("%.0f fps  calc %s  draw %s ",
		s.timing.FPS,
		s.timing.Compute.Round(time.Microsecond*100),
		s.timing.Render.Round(time.Microsecond*100))
}

func formatMagnification(m float64) string {
	switch {
	case m >= 1e6:
		return fmt.Sprintf("%.3g", m)
	case m >= 100:
		return fmt.Sprintf("%.0f", m)
	default:
		return fmt.Sprintf("%.2f", m)
	}
}

// Render draws the status line across row of b.
func (s *StatusLine) Render(b backend.Backend, row, width int) {
	if width <= 0 {
		return
	}
	b.Fill(core.RectFromSize(row, 0, 1, width), core.NewStyledCell(' ', s.barStyle))

	if s.message != "" {
		style := s.barStyle
		if s.messageType == MessageError {
			style = s.errStyle
		}
		DrawString(b, 0, row, width, " "+s.message, style)
		s.messageTTL--
		if s.messageTTL <= 0 {
			s.message = ""
			s.messageType = MessageNone
		}
		return
	}

	left := s.Left()
	right := s.Right()
	rw := uniseg.StringWidth(right)

	// Right side is dropped first when the line is too narrow.
	leftMax := width
	if uniseg.StringWidth(left)+rw+1 <= width {
		DrawString(b, width-rw, row, rw, right, s.barStyle)
		leftMax = width - rw - 1
	}
	DrawString(b, 0, row, leftMax, left, s.labelStyle)
}

// DrawString writes str from column x, stopping before maxWidth columns
// are exceeded. It returns the number of columns written.
func DrawString(b backend.Backend, x, y, maxWidth int, str string, style core.Style) int {
	col := 0
	g := uniseg.NewGraphemes(str)
	for g.Next() {
		w := g.Width()
		if col+w > maxWidth {
			break
		}
		runes := g.Runes()
		b.SetCell(x+col, y, core.NewStyledCell(runes[0], style))
		for i := 1; i < w; i++ {
			b.SetCell(x+col+i, y, core.NewStyledCell(' ', style))
		}
		col += w
	}
	return col
}
