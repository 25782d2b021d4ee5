package bls12381

import (
	blst "github.com/supranational/blst/bindings/go"
)

// DSTG2RFC9380 is the domain-separation tag for hashing an identity onto
// G2, used by the bls-unchained-g1-rfc9380 scheme.
const DSTG2RFC9380 = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"

// DSTG1RFC9380 is the domain-separation tag for hashing an identity onto
// G1, used by pedersen-bls-unchained's opposite-group identity hash.
const DSTG1RFC9380 = "BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_"

// DSTG2Legacy is the legacy domain-separation tag for hashing an identity
// onto G2 under bls-unchained-on-g1, retained so ciphertexts produced
// under it still decrypt.
const DSTG2Legacy = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_"

// HashToG2 maps msg to a point on G2 using the RFC 9380 SSWU random-oracle
// construction with domain-separation tag dst.
func HashToG2(msg []byte, dst string) G2Point {
	p := blst.HashToG2(msg, []byte(dst), nil)
	return G2Point{p: *p.ToAffine()}
}

// HashToG1 maps msg to a point on G1 using the RFC 9380 SSWU random-oracle
// construction with domain-separation tag dst.
func HashToG1(msg []byte, dst string) G1Point {
	p := blst.HashToG1(msg, []byte(dst), nil)
	return G1Point{p: *p.ToAffine()}
}
