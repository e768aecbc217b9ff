package anim

import (
	"errors"
	"fmt"
)

// ErrWrongVariant is returned when a variant-specific mutator is called
// while a different Spec kind is active.
var ErrWrongVariant = errors.New("wrong motion spec variant")

func wrongVariant(op string, have Kind) error {
	return fmt.Errorf("%s: active spec is %s: %w", op, have, ErrWrongVariant)
}
