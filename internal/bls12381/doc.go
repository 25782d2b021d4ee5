// Package bls12381 wraps the BLS12-381 pairing-friendly curve operations
// needed by the Boneh-Franklin IBE core: compressed point encode/decode,
// RFC 9380 hash-to-curve, the optimal-ate pairing, and the Fp12
// serialization the IBE layer hashes to derive key material.
//
// All curve arithmetic is delegated to github.com/supranational/blst, the
// assembly-optimized BLS12-381 library used by the wider drand/Ethereum
// beacon-chain ecosystem; this package only adds the byte-level
// conventions the timelock wire format requires.
package bls12381
