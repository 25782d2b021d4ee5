// Package tlock implements the timelock recipient/identity pair (C7):
// an age.Recipient that IBE-encrypts a file key to a future beacon
// round, and an age.Identity that fetches that round's signature and
// IBE-decrypts it back. Round/time conversions (C8) live alongside it
// since both are pure functions of the same ChainInfo.
package tlock

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ardents-project/tlock/age"
	"github.com/ardents-project/tlock/beacon"
	"github.com/ardents-project/tlock/errs"
	"github.com/ardents-project/tlock/internal/ibe"
)

// StanzaType is the recipient stanza type this package produces and
// consumes (§4.7, §6).
const StanzaType = "tlock"

// identityForRound is SHA-256(be_u64(round)), the IBE identity bound
// to a beacon round.
func identityForRound(round uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], round)
	sum := sha256.Sum256(buf[:])
	return sum[:]
}

// Recipient IBE-encrypts a file key to a future beacon round, as the
// "tlock" stanza.
type Recipient struct {
	Round uint64
	Chain beacon.ChainInfo
}

// NewRecipient validates round and chain.SchemeID up front. Wrap can
// still fail if chain.PublicKey is not a valid point for the scheme, or
// on a CSPRNG error.
func NewRecipient(round uint64, chain beacon.ChainInfo) (*Recipient, error) {
	if round < 1 {
		return nil, errs.New(errs.InputValidation, fmt.Errorf("tlock: round must be >= 1, got %d", round))
	}
	if _, err := ibe.VariantForScheme(ibe.SchemeID(chain.SchemeID)); err != nil {
		return nil, errs.New(errs.UnsupportedScheme, err)
	}
	return &Recipient{Round: round, Chain: chain}, nil
}

// Wrap implements age.Recipient.
func (r *Recipient) Wrap(fileKey []byte) ([]age.Stanza, error) {
	variant, err := ibe.VariantForScheme(ibe.SchemeID(r.Chain.SchemeID))
	if err != nil {
		return nil, errs.New(errs.UnsupportedScheme, err)
	}

	identity := identityForRound(r.Round)
	ct, err := ibe.Encrypt(variant, r.Chain.PublicKey, identity, fileKey, rand.Reader)
	if err != nil {
		return nil, wrapIBEErr(err)
	}

	return []age.Stanza{{
		Type: StanzaType,
		Args: []string{strconv.FormatUint(r.Round, 10), r.Chain.ChainHash},
		Body: ct.Bytes(),
	}}, nil
}

// Identity fetches the beacon signature for a tlock stanza's round and
// IBE-decrypts the wrapped file key. It is bound to a single ctx, so a
// fresh Identity must be built per decrypt call.
type Identity struct {
	ctx    context.Context
	chain  beacon.ChainInfo
	client beacon.Client
	now    func() time.Time
}

// NewIdentity builds an Identity scoped to ctx, decrypting against
// chain using client to fetch the per-round beacon.
func NewIdentity(ctx context.Context, chain beacon.ChainInfo, client beacon.Client) *Identity {
	return &Identity{ctx: ctx, chain: chain, client: client, now: time.Now}
}

// Unwrap implements age.Identity.
func (id *Identity) Unwrap(stanzas []age.Stanza) ([]byte, error) {
	var stanza *age.Stanza
	for i := range stanzas {
		if stanzas[i].Type == StanzaType {
			if stanza != nil {
				return nil, errs.New(errs.ProtocolError, fmt.Errorf("tlock: header has more than one %q stanza", StanzaType))
			}
			stanza = &stanzas[i]
		}
	}
	if stanza == nil {
		return nil, errs.New(errs.ProtocolError, fmt.Errorf("tlock: header has no %q stanza", StanzaType))
	}
	if len(stanza.Args) != 2 {
		return nil, errs.New(errs.ProtocolError, fmt.Errorf("tlock: expected 2 stanza args, got %d", len(stanza.Args)))
	}

	round, err := strconv.ParseUint(stanza.Args[0], 10, 64)
	if err != nil || round < 1 {
		return nil, errs.New(errs.ProtocolError, fmt.Errorf("tlock: invalid round arg %q", stanza.Args[0]))
	}
	chainHash := strings.ToLower(stanza.Args[1])
	if !isLowerHex(stanza.Args[1]) {
		return nil, errs.New(errs.ProtocolError, fmt.Errorf("tlock: chain hash arg %q is not lowercase hex", stanza.Args[1]))
	}
	if chainHash != strings.ToLower(id.chain.ChainHash) {
		return nil, errs.New(errs.ProtocolError, fmt.Errorf("tlock: stanza chain hash %q does not match configured chain %q", chainHash, id.chain.ChainHash))
	}

	variant, err := ibe.VariantForScheme(ibe.SchemeID(id.chain.SchemeID))
	if err != nil {
		return nil, errs.New(errs.UnsupportedScheme, err)
	}

	if unlockAt := TimeForRound(id.chain, round); id.now().Before(unlockAt) {
		return nil, errs.TooEarlyErr(round, unlockAt)
	}

	b, err := id.client.FetchBeacon(id.ctx, round)
	if err != nil {
		return nil, errs.New(errs.Network, err)
	}

	ct, err := ibe.ParseCiphertext(stanza.Body, variant)
	if err != nil {
		return nil, wrapIBEErr(err)
	}
	message, err := ibe.Decrypt(variant, b.Signature, ct)
	if err != nil {
		return nil, wrapIBEErr(err)
	}
	return message, nil
}

func isLowerHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}
