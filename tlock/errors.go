package tlock

import (
	"errors"
	"fmt"

	"github.com/ardents-project/tlock/errs"
	"github.com/ardents-project/tlock/internal/bls12381"
	"github.com/ardents-project/tlock/internal/ibe"
)

// wrapIBEErr classifies an error from the internal/ibe or
// internal/bls12381 layers into the taxonomy §7 requires of the
// tlock-facing API.
func wrapIBEErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ibe.ErrDecryption):
		return errs.New(errs.Authentication, err)
	case errors.Is(err, ibe.ErrInvalidCiphertext),
		errors.Is(err, bls12381.ErrInvalidPoint),
		errors.Is(err, bls12381.ErrInvalidScalar):
		return errs.New(errs.InvalidCiphertext, err)
	default:
		return errs.New(errs.Internal, fmt.Errorf("tlock: %w", err))
	}
}
