package renderer

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/fractalterm/internal/input"
	"github.com/dshills/fractalterm/internal/renderer/backend"
	"github.com/dshills/fractalterm/internal/renderer/core"
	"github.com/dshills/fractalterm/internal/renderer/statusline"
)

const (
	helpTitle   = " keys "
	helpPadding = 2
)

var (
	helpStyle  = core.NewStyle(core.ColorWhite).WithBackground(core.ColorFromRGB(0x29, 0x36, 0x6f))
	helpBorder = core.NewStyle(core.ColorFromRGB(0xf4, 0xf4, 0xa0)).WithBackground(core.ColorFromRGB(0x29, 0x36, 0x6f))
)

// helpRect centers a box for lines inside a sw x sh screen.
func helpRect(lines []string, sw, sh int) core.ScreenRect {
	w := uniseg.StringWidth(helpTitle)
	for _, l := range lines {
		w = max(w, uniseg.StringWidth(l))
	}
	w += 2 * helpPadding
	h := len(lines) + 2

	w = min(w, sw)
	h = min(h, sh)
	return core.RectFromSize((sh-h)/2, (sw-w)/2, h, w)
}

// drawHelp draws the key binding box over whatever is on screen.
func drawHelp(b backend.Backend, sw, sh int) {
	lines := input.HelpLines()
	rect := helpRect(lines, sw, sh)
	if rect.IsEmpty() {
		return
	}

	b.Fill(rect, core.NewStyledCell(' ', helpStyle))
	b.Fill(core.RectFromSize(rect.Top, rect.Left, 1, rect.Width()), core.NewStyledCell('─', helpBorder))
	b.Fill(core.RectFromSize(rect.Bottom-1, rect.Left, 1, rect.Width()), core.NewStyledCell('─', helpBorder))

	titleX := rect.Left + (rect.Width()-uniseg.StringWidth(helpTitle))/2
	statusline.DrawString(b, max(titleX, rect.Left), rect.Top, rect.Width(), helpTitle, helpBorder.Bold())

	inner := rect.Width() - 2*helpPadding
	for i, l := range lines {
		y := rect.Top + 1 + i
		if y >= rect.Bottom-1 {
			break
		}
		statusline.DrawString(b, rect.Left+helpPadding, y, inner, l, helpStyle)
	}
}
