package bls12381

import (
	"math/big"

	blst "github.com/supranational/blst/bindings/go"
)

// order is the BLS12-381 scalar field modulus r, the order of both G1 and
// G2's prime-order subgroup. It is a public protocol constant.
var order, _ = new(big.Int).SetString(
	"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// Scalar is an element of the BLS12-381 scalar field.
type Scalar struct {
	s blst.Scalar
}

// ReduceModOrder interprets b as a big-endian integer and reduces it modulo
// the curve order, returning ErrInvalidScalar if the result is zero. This
// is how the IBE H3 derivation turns an HKDF output into a usable scalar:
// it never rejects on out-of-range input the way Deserialize would, it
// folds it back into range instead.
func ReduceModOrder(b []byte) (Scalar, error) {
	n := new(big.Int).SetBytes(b)
	n.Mod(n, order)
	if n.Sign() == 0 {
		return Scalar{}, ErrInvalidScalar
	}
	buf := make([]byte, 32)
	n.FillBytes(buf)
	var sc blst.Scalar
	if sc.FromBEndian(buf) == nil {
		return Scalar{}, ErrInvalidScalar
	}
	return Scalar{s: sc}, nil
}

func (s Scalar) raw() *blst.Scalar { return &s.s }
