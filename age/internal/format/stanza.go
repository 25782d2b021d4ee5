// Package format implements the AGE header codec: the recipient-stanza
// wire encoding, the line-oriented header parser, and the exact byte
// range the header HMAC covers. Computing and checking the HMAC itself
// is done by the caller.
package format

import (
	"fmt"

	"github.com/ardents-project/tlock/errs"
)

// Stanza is one recipient record in an AGE header: a type token,
// ordered argument tokens, and an arbitrary body.
type Stanza struct {
	Type string
	Args []string
	Body []byte
}

// validateToken enforces the printable-ASCII rule shared by type and
// every arg: every code point in [33, 126], never empty.
func validateToken(field, s string) error {
	if len(s) == 0 {
		return errs.Newf(errs.InputValidation, "format: empty %s token", field)
	}
	for _, r := range s {
		if r < 33 || r > 126 {
			return errs.Newf(errs.InputValidation, "format: %s token %q has non-printable code point %U", field, s, r)
		}
	}
	return nil
}

// Validate checks the Stanza invariants from §3: type and every arg
// are non-empty tokens of printable ASCII.
func (s Stanza) Validate() error {
	if err := validateToken("type", s.Type); err != nil {
		return err
	}
	for i, arg := range s.Args {
		if err := validateToken(fmt.Sprintf("arg[%d]", i), arg); err != nil {
			return err
		}
	}
	return nil
}
