package fractal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a matrix would have zero width
	// or height.
	ErrInvalidDimensions = errors.New("invalid matrix dimensions")

	// ErrComputeWorkerFailure is returned when a band worker does not
	// complete. The output matrix is left unmodified.
	ErrComputeWorkerFailure = errors.New("compute worker failed")
)

// WorkerError describes a failed band worker.
type WorkerError struct {
	Band     int
	StartRow int
	EndRow   int
	Cause    any
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("band %d (rows %d-%d): %v", e.Band, e.StartRow, e.EndRow, e.Cause)
}

// Unwrap returns ErrComputeWorkerFailure so callers can match on it.
func (e *WorkerError) Unwrap() error {
	return ErrComputeWorkerFailure
}
