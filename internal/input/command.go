// Package input translates terminal events into explorer commands.
package input

import "fmt"

// CommandKind identifies a command.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdPositionVelocity
	CmdPositionTween
	CmdZoom
	CmdZoomContinuous
	CmdRotationVelocity
	CmdPoi
	CmdAutoExposure
	CmdStop
	CmdReset
	CmdSize
	CmdHelp
	CmdQuit
	CmdSwitchView
)

var commandNames = map[CommandKind]string{
	CmdNone:             "none",
	CmdPositionVelocity: "position-velocity",
	CmdPositionTween:    "position-tween",
	CmdZoom:             "zoom",
	CmdZoomContinuous:   "zoom-continuous",
	CmdRotationVelocity: "rotation-velocity",
	CmdPoi:              "poi",
	CmdAutoExposure:     "auto-exposure",
	CmdStop:             "stop",
	CmdReset:            "reset",
	CmdSize:             "size",
	CmdHelp:             "help",
	CmdQuit:             "quit",
	CmdSwitchView:       "switch-view",
}

// String returns the command name.
func (k CommandKind) String() string {
	if s, ok := commandNames[k]; ok {
		return s
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is one user intent.
//
// X and Y carry multipliers for velocity and zoom commands. Col and Row carry
// a cell position for PositionTween and the new size for Size. Index
// carries the slot for Poi.
type Command struct {
	Kind  CommandKind
	X, Y  float64
	Col   int
	Row   int
	Index int
}

// IsNone reports whether c carries no intent.
func (c Command) IsNone() bool {
	return c.Kind == CmdNone
}

func (c Command) String() string {
	switch c.Kind {
	case CmdPositionVelocity:
		return fmt.Sprintf("%s(%g, %g)", c.Kind, c.X, c.Y)
	case CmdZoom, CmdZoomContinuous, CmdRotationVelocity:
		return fmt.Sprintf("%s(%g)", c.Kind, c.X)
	case CmdPositionTween, CmdSize:
		return fmt.Sprintf("%s(%d, %d)", c.Kind, c.Col, c.Row)
	case CmdPoi:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Index)
	default:
		return c.Kind.String()
	}
}

// PositionVelocity pans by (xm, ym) velocity increments.
func PositionVelocity(xm, ym float64) Command {
	return Command{Kind: CmdPositionVelocity, X: xm, Y: ym}
}

// PositionTween eases the center to the point under cell (col, row).
func PositionTween(col, row int) Command {
	return Command{Kind: CmdPositionTween, Col: col, Row: row}
}

// Zoom adds m zoom increments of decaying scale velocity. Negative m zooms in.
func Zoom(m float64) Command {
	return Command{Kind: CmdZoom, X: m}
}

// ZoomContinuous sets a non-decaying scale velocity of m increments.
func ZoomContinuous(m float64) Command {
	return Command{Kind: CmdZoomContinuous, X: m}
}

// RotationVelocity adds m rotation increments of decaying angular velocity.
func RotationVelocity(m float64) Command {
	return Command{Kind: CmdRotationVelocity, X: m}
}

// Poi starts the animation to slot i.
func Poi(i int) Command {
	return Command{Kind: CmdPoi, Index: i}
}

// Size reports a new terminal size.
func Size(width, height int) Command {
	return Command{Kind: CmdSize, Col: width, Row: height}
}

// Simple returns a command that carries no arguments.
func Simple(kind CommandKind) Command {
	return Command{Kind: kind}
}
