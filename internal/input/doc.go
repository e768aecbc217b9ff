// Package input turns terminal events into explorer commands.
//
// A Keymap binds runes, special keys and mouse buttons to Command values.
// DefaultKeymap carries the stock bindings: arrows pan, a and z zoom, the
// brackets rotate, digits start a tour and Tab switches to the Julia view.
//
//	km := input.DefaultKeymap()
//	cmd := km.FromEvent(ev)
//	if !cmd.IsNone() {
//		view.Apply(cmd)
//	}
//
// HelpLines renders the same bindings for the help overlay.
package input
