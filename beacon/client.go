// Package beacon defines the external collaborator the timelock core
// consumes (§6): chain metadata and per-round signatures published by
// a threshold network. The core only depends on the Client interface;
// HTTPClient is a reference implementation.
package beacon

import "context"

// ChainInfo describes a beacon chain: which IBE scheme it runs, its
// round schedule, and the chain-binding hash carried in tlock stanzas.
type ChainInfo struct {
	SchemeID        string
	PeriodSeconds   uint64
	GenesisTimeUnix int64
	ChainHash       string // lowercase hex
	PublicKey       []byte // compressed group element, scheme-dependent
}

// Beacon is one published (round, signature) pair.
type Beacon struct {
	Round     uint64
	Signature []byte
}

// Client is what the core requires of a beacon network: chain
// metadata and the signature for a round, both potentially blocking
// and cancellable.
type Client interface {
	ChainInfo(ctx context.Context) (ChainInfo, error)
	FetchBeacon(ctx context.Context, round uint64) (Beacon, error)
}
