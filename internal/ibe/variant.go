package ibe

import (
	"fmt"

	"github.com/ardents-project/tlock/internal/bls12381"
)

// SchemeID identifies one of the three beacon-network pairing schemes a
// tlock recipient stanza may be bound to.
type SchemeID string

const (
	SchemePedersenUnchained  SchemeID = "pedersen-bls-unchained"
	SchemeUnchainedOnG1      SchemeID = "bls-unchained-on-g1"
	SchemeUnchainedG1RFC9380 SchemeID = "bls-unchained-g1-rfc9380"
)

// Group identifies which BLS12-381 subgroup carries a point.
type Group int

const (
	GroupG1 Group = iota
	GroupG2
)

// Variant fully describes the two symmetric instantiations of
// Boneh-Franklin IBE used by the three scheme ids: which group carries
// master_pk (and therefore U), and the domain-separation tag used to hash
// an identity onto the opposite group.
type Variant struct {
	Scheme         SchemeID
	MasterPKGroup  Group
	IdentityDST    string
	MasterPKSize   int
	SignatureSize  int
}

// VariantForScheme resolves the curve variant for a chain's scheme_id.
// Unrecognized ids yield a plain error; classifying it as
// UnsupportedScheme is left to the caller.
func VariantForScheme(id SchemeID) (Variant, error) {
	switch id {
	case SchemePedersenUnchained:
		return Variant{
			Scheme:        id,
			MasterPKGroup: GroupG2,
			IdentityDST:   bls12381.DSTG1RFC9380,
			MasterPKSize:  bls12381.G2CompressedSize,
			SignatureSize: bls12381.G1CompressedSize,
		}, nil
	case SchemeUnchainedOnG1:
		return Variant{
			Scheme:        id,
			MasterPKGroup: GroupG1,
			IdentityDST:   bls12381.DSTG2Legacy,
			MasterPKSize:  bls12381.G1CompressedSize,
			SignatureSize: bls12381.G2CompressedSize,
		}, nil
	case SchemeUnchainedG1RFC9380:
		return Variant{
			Scheme:        id,
			MasterPKGroup: GroupG1,
			IdentityDST:   bls12381.DSTG2RFC9380,
			MasterPKSize:  bls12381.G1CompressedSize,
			SignatureSize: bls12381.G2CompressedSize,
		}, nil
	default:
		return Variant{}, fmt.Errorf("ibe: unrecognized scheme id %q", id)
	}
}
