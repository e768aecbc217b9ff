package input

import "github.com/dshills/fractalterm/internal/renderer/backend"

// Keymap maps terminal events to commands.
type Keymap struct {
	runes map[rune]Command
	keys  map[backend.Key]Command
	mouse map[backend.MouseButton]Command
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{
		runes: make(map[rune]Command),
		keys:  make(map[backend.Key]Command),
		mouse: make(map[backend.MouseButton]Command),
	}
}

// BindRunes binds each rune in runes to cmd.
func (k *Keymap) BindRunes(runes string, cmd Command) *Keymap {
	for _, r := range runes {
		k.runes[r] = cmd
	}
	return k
}

// BindKey binds a special key to cmd.
func (k *Keymap) BindKey(key backend.Key, cmd Command) *Keymap {
	k.keys[key] = cmd
	return k
}

// BindMouse binds a mouse button to cmd. A PositionTween binding receives
// the event position.
func (k *Keymap) BindMouse(button backend.MouseButton, cmd Command) *Keymap {
	k.mouse[button] = cmd
	return k
}

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() *Keymap {
	k := NewKeymap().
		BindKey(backend.KeyLeft, PositionVelocity(-1, 0)).
		BindKey(backend.KeyRight, PositionVelocity(1, 0)).
		BindKey(backend.KeyUp, PositionVelocity(0, -1)).
		BindKey(backend.KeyDown, PositionVelocity(0, 1)).
		BindRunes("a=", Zoom(-1)).
		BindRunes("A+", ZoomContinuous(-0.5)).
		BindRunes("z-", Zoom(1)).
		BindRunes("Z_", ZoomContinuous(0.5)).
		BindRunes("[{", RotationVelocity(1)).
		BindRunes("]}", RotationVelocity(-1)).
		BindRunes("eE", Simple(CmdAutoExposure)).
		BindRunes(" ", Simple(CmdStop)).
		BindRunes("r", Simple(CmdReset)).
		BindRunes("hH?/", Simple(CmdHelp)).
		BindRunes("q", Simple(CmdQuit)).
		BindKey(backend.KeyEscape, Simple(CmdQuit)).
		BindKey(backend.KeyCtrlC, Simple(CmdQuit)).
		BindKey(backend.KeyTab, Simple(CmdSwitchView)).
		BindMouse(backend.MouseWheelUp, Zoom(-0.3)).
		BindMouse(backend.MouseWheelDown, Zoom(0.3)).
		BindMouse(backend.MouseLeft, PositionTween(0, 0))

	for i, r := range "1234567890" {
		k.BindRunes(string(r), Poi(i))
	}
	return k
}

// FromEvent returns the command bound to ev, or a CmdNone command.
func (k *Keymap) FromEvent(ev backend.Event) Command {
	switch ev.Type {
	case backend.EventKey:
		if ev.Key == backend.KeyRune {
			return k.runes[ev.Rune]
		}
		return k.keys[ev.Key]

	case backend.EventMouse:
		cmd, ok := k.mouse[ev.MouseButton]
		if !ok {
			return Command{}
		}
		if cmd.Kind == CmdPositionTween {
			cmd.Col, cmd.Row = ev.MouseX, ev.MouseY
		}
		return cmd

	case backend.EventResize:
		return Size(ev.Width, ev.Height)
	}
	return Command{}
}
