// Package domain defines the session model and the business rules applied to it.
package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Session is one recorded training activity.
type Session struct {
	ID       string
	Date     string
	Distance float64
	Type     string
}

// Activity types accepted after normalization.
const (
	TypeSwim = "swim"
	TypeRun  = "run"
)

// DefaultType is substituted when a request omits the activity type.
const DefaultType = TypeSwim

// ErrNotFound is returned when no session row matches the requested id.
var ErrNotFound = errors.New("session not found")

// ValidationError reports a client-caused field failure. Rule names the
// violated constraint in plain text and ends up in the 400 response body.
type ValidationError struct {
	Rule string
}

func (e *ValidationError) Error() string { return e.Rule }

func invalidf(format string, args ...any) error {
	return &ValidationError{Rule: fmt.Sprintf(format, args...)}
}

// NormalizeType maps an empty type to the default and canonicalizes any other
// input to trimmed lowercase. Membership in the allowed set is checked
// separately by ValidType.
func NormalizeType(input string) string {
	if input == "" {
		return DefaultType
	}
	return strings.ToLower(strings.TrimSpace(input))
}

// ValidType reports whether t is an allowed activity type.
func ValidType(t string) bool {
	return t == TypeSwim || t == TypeRun
}

// ValidDistance reports whether d is a finite number strictly greater than zero.
func ValidDistance(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d > 0
}
