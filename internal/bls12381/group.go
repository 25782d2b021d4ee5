package bls12381

import (
	blst "github.com/supranational/blst/bindings/go"
)

// G1CompressedSize and G2CompressedSize are the compressed point encoding
// lengths for the two groups, per the IETF BLS signature draft.
const (
	G1CompressedSize = 48
	G2CompressedSize = 96
)

// G1Point is a point on G1, always known to lie in the prime-order
// subgroup once constructed through this package.
type G1Point struct {
	p blst.P1Affine
}

// G2Point is a point on G2, always known to lie in the prime-order
// subgroup once constructed through this package.
type G2Point struct {
	p blst.P2Affine
}

// G1Generator returns the standard generator of G1.
func G1Generator() G1Point {
	return G1Point{p: *blst.P1Generator().ToAffine()}
}

// G2Generator returns the standard generator of G2.
func G2Generator() G2Point {
	return G2Point{p: *blst.P2Generator().ToAffine()}
}

// DecodeG1 parses a 48-byte compressed G1 point, rejecting points not on
// the curve or outside the prime-order subgroup.
func DecodeG1(b []byte) (G1Point, error) {
	var p blst.P1Affine
	if len(b) != G1CompressedSize || p.Uncompress(b) == nil {
		return G1Point{}, ErrInvalidPoint
	}
	if !p.InG1() {
		return G1Point{}, ErrInvalidPoint
	}
	return G1Point{p: p}, nil
}

// DecodeG2 parses a 96-byte compressed G2 point, rejecting points not on
// the curve or outside the prime-order subgroup.
func DecodeG2(b []byte) (G2Point, error) {
	var p blst.P2Affine
	if len(b) != G2CompressedSize || p.Uncompress(b) == nil {
		return G2Point{}, ErrInvalidPoint
	}
	if !p.InG2() {
		return G2Point{}, ErrInvalidPoint
	}
	return G2Point{p: p}, nil
}

// Bytes returns the 48-byte compressed encoding of p.
func (p G1Point) Bytes() []byte { return p.p.Compress() }

// Bytes returns the 96-byte compressed encoding of p.
func (p G2Point) Bytes() []byte { return p.p.Compress() }

// Mul returns s*p.
func (p G1Point) Mul(s Scalar) G1Point {
	var j blst.P1
	j.FromAffine(&p.p)
	jac := j.Mult(s.raw())
	return G1Point{p: *jac.ToAffine()}
}

// Mul returns s*p.
func (p G2Point) Mul(s Scalar) G2Point {
	var j blst.P2
	j.FromAffine(&p.p)
	jac := j.Mult(s.raw())
	return G2Point{p: *jac.ToAffine()}
}

// affine exposes the underlying blst type for the pairing package.
func (p G1Point) affine() *blst.P1Affine { return &p.p }
func (p G2Point) affine() *blst.P2Affine { return &p.p }
