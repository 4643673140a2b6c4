package config

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is matched by every *ValidationError.
var ErrValidationFailed = errors.New("validation failed")

// ParseError reports TOML that could not be decoded into a Config. Path is
// the file name, or "<reader>" for LoadFromReader. Line and Column are zero
// when the decoder gave no position, as for unknown keys.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s at line %d, column %d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s at line %d", e.Path, e.Line)
	}
	return "parse error in " + where + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError names a setting whose value is not accepted.
type ValidationError struct {
	Path    string // dotted, e.g. "logging.level"
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s (allowed: %v)", e.Value, e.Path, e.Allowed)
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
