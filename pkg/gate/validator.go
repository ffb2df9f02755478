package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSession is the only validator error the gate treats as a
// definitive rejection. Validators return it (or wrap it) when the backend
// answers 401.
var ErrInvalidSession = errors.New("gate: session rejected")

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("gate: unknown mode")

// Validator checks a session token upstream. nil means the session is
// valid; any error other than ErrInvalidSession is ambiguous.
type Validator interface {
	Validate(ctx context.Context, token string) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(ctx context.Context, token string) error

func (f ValidatorFunc) Validate(ctx context.Context, token string) error { return f(ctx, token) }

// Mode selects how much the gate trusts the session cookie.
type Mode string

const (
	// ModeValidated confirms the cookie upstream on auth and protected pages.
	ModeValidated Mode = "validated"
	// ModePresence treats any non-empty cookie as a session.
	ModePresence Mode = "presence"
)

// ParseMode accepts "validated" and "presence" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeValidated:
		return ModeValidated, nil
	case ModePresence:
		return ModePresence, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func classify(err error) Check {
	switch {
	case err == nil:
		return CheckValid
	case errors.Is(err, ErrInvalidSession):
		return CheckInvalid
	default:
		return CheckUnavailable
	}
}
