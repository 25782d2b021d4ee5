package bls12381

import "errors"

// ErrInvalidPoint is returned when a compressed point fails to decode, is
// not on the curve, or does not lie in the prime-order subgroup.
var ErrInvalidPoint = errors.New("bls12381: invalid point encoding")

// ErrInvalidScalar is returned when a scalar reduces to zero or fails to
// parse.
var ErrInvalidScalar = errors.New("bls12381: invalid scalar")
