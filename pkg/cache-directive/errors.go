package cachedirective

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPattern             = errors.New("unknown directive pattern")
	ErrExclusiveDirectiveConflict = errors.New("exclusive directives")
	ErrInvalidTimeExpression      = errors.New("invalid time expression")
	ErrInvalidDirectiveValue      = errors.New("invalid directive value")
	ErrInvalidToken               = errors.New("invalid token")
)

// UnknownPatternError is returned for a pattern name other than
// public, private, no-cache and no-store.
type UnknownPatternError struct {
	Pattern string
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("Cache-Control: Unknown simple directive pattern %q", e.Pattern)
}

func (e *UnknownPatternError) Unwrap() error { return ErrUnknownPattern }

// ExclusiveDirectiveConflictError is returned when more than one of public,
// private (unqualified) and no-cache (unqualified) / no-store is set.
type ExclusiveDirectiveConflictError struct {
	// Directives names one directive per conflicting class.
	Directives []Directive
}

func (e *ExclusiveDirectiveConflictError) Error() string {
	names := make([]string, len(e.Directives))
	for i, d := range e.Directives {
		names[i] = string(d)
	}
	return fmt.Sprintf("Cache-Control: The public, private:true, and no-cache:true/no-store directives are exclusive, got %s",
		strings.Join(names, ", "))
}

func (e *ExclusiveDirectiveConflictError) Unwrap() error { return ErrExclusiveDirectiveConflict }

// InvalidTimeExpressionError is returned for a delta-seconds string
// that is not a recognized time expression.
type InvalidTimeExpressionError struct {
	Directive Directive
	Value     string
}

func (e *InvalidTimeExpressionError) Error() string {
	return fmt.Sprintf("Cache-Control: Invalid time string %q for the %s delta directive", e.Value, e.Directive)
}

func (e *InvalidTimeExpressionError) Unwrap() error { return ErrInvalidTimeExpression }

// InvalidDirectiveValueError is returned for values of the wrong type,
// e.g. a negative or non-numeric delta-seconds value or a non-string field name.
type InvalidDirectiveValueError struct {
	Directive Directive
	Value     any
}

func (e *InvalidDirectiveValueError) Error() string {
	return fmt.Sprintf("Cache-Control: Invalid value `%v` for the %s directive", e.Value, e.Directive)
}

func (e *InvalidDirectiveValueError) Unwrap() error { return ErrInvalidDirectiveValue }

// InvalidTokenError is returned for a field name that is not a valid token.
type InvalidTokenError struct {
	Directive Directive
	Value     string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("Cache-Control: Invalid token %q for the %s field directive", e.Value, e.Directive)
}

func (e *InvalidTokenError) Unwrap() error { return ErrInvalidToken }
