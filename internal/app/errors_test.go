package app

import (
	"errors"
	"testing"

	"github.com/dshills/fractalterm/internal/fractal"
)

func TestComponentError_Error(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  *ComponentError
		want string
	}{
		{"full", NewComponentError("view", "render", base), "view: render: boom"},
		{"no action", NewComponentError("view", "", base), "view: boom"},
		{"no cause", NewComponentError("view", "render", nil), "view: render"},
		{"component only", NewComponentError("view", "", nil), "view"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComponentError_Is(t *testing.T) {
	err := error(NewComponentError("view", "render", fractal.ErrComputeWorkerFailure))
	if !errors.Is(err, fractal.ErrComputeWorkerFailure) {
		t.Error("ComponentError should match its cause")
	}

	var nilErr *ComponentError
	if nilErr.Unwrap() != nil {
		t.Error("nil Unwrap() should return nil")
	}
}

func TestInitError(t *testing.T) {
	err := error(&InitError{Component: "backend", Err: ErrNoBackend})
	if got := err.Error(); got != "init backend: no backend" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrNoBackend) {
		t.Error("InitError should unwrap to its cause")
	}
}
