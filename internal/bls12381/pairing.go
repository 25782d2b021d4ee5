package bls12381

import (
	blst "github.com/supranational/blst/bindings/go"
)

// fp12LimbSize is the size of a single Fp limb in the Fp12 tower.
const fp12LimbSize = 48

// fp12Size is the wire size of a full Fp12 element: 12 Fp limbs.
const fp12Size = 12 * fp12LimbSize

// GT is an element of the target group of the optimal-ate pairing,
// e: G1 x G2 -> GT.
type GT struct {
	v blst.Fp12
}

// Pair computes e(g1, g2).
func Pair(g1 G1Point, g2 G2Point) GT {
	v := blst.Fp12MillerLoop(g2.affine(), g1.affine())
	v.FinalExp()
	return GT{v: *v}
}

// Bytes serializes the Fp12 element with top-coefficient-first nesting at
// every level of the tower (Fp12 = c1||c0 over Fp6, Fp6 = c2||c1||c0 over
// Fp2, Fp2 = c1||c0 over Fp), matching the external beacon network's IBE
// hash input. blst.Fp12.ToBendian emits the tower in the opposite,
// mathematically natural nesting (c0 outermost); since every level is
// reversed, reversing the flat sequence of 12 Fp limbs once produces
// exactly the required byte order.
func (g GT) Bytes() []byte {
	natural := g.v.ToBendian()
	out := make([]byte, fp12Size)
	for i := 0; i < 12; i++ {
		src := natural[i*fp12LimbSize : (i+1)*fp12LimbSize]
		dstStart := (11 - i) * fp12LimbSize
		copy(out[dstStart:dstStart+fp12LimbSize], src)
	}
	return out
}

// Equal reports whether g and other are the same GT element.
func (g GT) Equal(other GT) bool {
	return g.v == other.v
}
