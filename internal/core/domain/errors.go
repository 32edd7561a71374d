package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuery    = errors.New("empty query")
	ErrConfiguration = errors.New("configuration missing")
	ErrProvider      = errors.New("provider failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
