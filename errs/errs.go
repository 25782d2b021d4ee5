// Package errs defines the error taxonomy surfaced across tlock: every
// failure a caller can observe from the IBE, AGE, or timelock layers
// carries one of a small fixed set of kinds so callers can branch on
// Is/As instead of string matching.
package errs

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies an Error for programmatic handling.
type Kind string

const (
	// InputValidation covers malformed headers, invalid stanza args,
	// non-printable characters, and bad base64.
	InputValidation Kind = "input_validation"
	// ProtocolError covers structural violations: wrong stanza type,
	// wrong arg count, wrong stanza count, version line mismatch.
	ProtocolError Kind = "protocol_error"
	// UnsupportedScheme covers a chain scheme_id outside the
	// recognized set.
	UnsupportedScheme Kind = "unsupported_scheme"
	// TooEarly covers decryption attempted before a round's beacon
	// exists.
	TooEarly Kind = "too_early"
	// Network covers any failure surfaced by the beacon client.
	Network Kind = "network"
	// Authentication covers header MAC mismatch, STREAM tag failure,
	// or IBE correctness-check failure.
	Authentication Kind = "authentication"
	// InvalidCiphertext covers non-subgroup points and wrong-length
	// IBE ciphertext bodies.
	InvalidCiphertext Kind = "invalid_ciphertext"
	// Internal covers counter overflow and CSPRNG failure.
	Internal Kind = "internal"
)

// Error wraps an underlying error with a Kind, and, for TooEarly, the
// round and its scheduled unlock time.
type Error struct {
	Kind     Kind
	Round    uint64
	UnlockAt time.Time
	err      error
}

func (e *Error) Error() string {
	if e.err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// New wraps err under kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, err: err}
}

// Newf builds an Error from a format string, as fmt.Errorf.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, err: fmt.Errorf(format, args...)}
}

// TooEarlyErr builds the TooEarly error carrying the round and its
// scheduled unlock time, per §7.
func TooEarlyErr(round uint64, unlockAt time.Time) *Error {
	return &Error{
		Kind:     TooEarly,
		Round:    round,
		UnlockAt: unlockAt,
		err:      fmt.Errorf("round %d has not been signed yet, unlocks at %s", round, unlockAt.UTC().Format(time.RFC3339)),
	}
}

// Is reports whether err is an *Error of the given kind, anywhere in
// its chain.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and
// false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
