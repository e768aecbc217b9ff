// Package renderer draws fractal index matrices to a terminal.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│  Glyph/Palette │ StatusLine │ Help      │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ Null (tests)        │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r, _ := renderer.New(b, ascii.MustCharset(ascii.DefaultCharset), renderer.DefaultOptions())
//	r.Draw(frame.Index)
package renderer
