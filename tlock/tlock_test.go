package tlock

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ardents-project/tlock/beacon"
	"github.com/ardents-project/tlock/errs"
	"github.com/ardents-project/tlock/internal/bls12381"
	"github.com/ardents-project/tlock/internal/ibe"
)

// fakeNetwork mirrors internal/ibe's test double: a master secret plus
// the public key and per-round signatures it implies, used to stand in
// for a real beacon network in these tests.
type fakeNetwork struct {
	v ibe.Variant
	s bls12381.Scalar
}

func newFakeNetwork(t *testing.T, scheme ibe.SchemeID, seed byte) fakeNetwork {
	t.Helper()
	v, err := ibe.VariantForScheme(scheme)
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = seed
	}
	buf[31] ^= 0x01
	s, err := bls12381.ReduceModOrder(buf)
	if err != nil {
		t.Fatalf("master secret: %v", err)
	}
	return fakeNetwork{v: v, s: s}
}

func (n fakeNetwork) publicKey() []byte {
	if n.v.MasterPKGroup == ibe.GroupG1 {
		return bls12381.G1Generator().Mul(n.s).Bytes()
	}
	return bls12381.G2Generator().Mul(n.s).Bytes()
}

func (n fakeNetwork) signature(round uint64) []byte {
	identity := identityForRound(round)
	if n.v.MasterPKGroup == ibe.GroupG1 {
		return bls12381.HashToG2(identity, n.v.IdentityDST).Mul(n.s).Bytes()
	}
	return bls12381.HashToG1(identity, n.v.IdentityDST).Mul(n.s).Bytes()
}

type fakeClient struct {
	net   fakeNetwork
	chain beacon.ChainInfo
}

func (c fakeClient) ChainInfo(ctx context.Context) (beacon.ChainInfo, error) {
	return c.chain, nil
}

func (c fakeClient) FetchBeacon(ctx context.Context, round uint64) (beacon.Beacon, error) {
	return beacon.Beacon{Round: round, Signature: c.net.signature(round)}, nil
}

func testChain(net fakeNetwork, scheme ibe.SchemeID) beacon.ChainInfo {
	return beacon.ChainInfo{
		SchemeID:        string(scheme),
		PeriodSeconds:   30,
		GenesisTimeUnix: 0,
		ChainHash:       "8990e7a9",
		PublicKey:       net.publicKey(),
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	schemes := []ibe.SchemeID{ibe.SchemePedersenUnchained, ibe.SchemeUnchainedOnG1, ibe.SchemeUnchainedG1RFC9380}
	for _, scheme := range schemes {
		scheme := scheme
		t.Run(string(scheme), func(t *testing.T) {
			net := newFakeNetwork(t, scheme, 0x11)
			chain := testChain(net, scheme)
			plaintext := []byte("hello world")

			ct, err := Encrypt(plaintext, 100, chain)
			if err != nil {
				t.Fatalf("encrypt: %v", err)
			}

			client := fakeClient{net: net, chain: chain}
			got, err := Decrypt(context.Background(), ct, chain, client)
			if err != nil {
				t.Fatalf("decrypt: %v", err)
			}
			if !bytes.Equal(got, plaintext) {
				t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
			}
		})
	}
}

func TestEncryptArmoredDecryptRoundTrip(t *testing.T) {
	net := newFakeNetwork(t, ibe.SchemeUnchainedG1RFC9380, 0x22)
	chain := testChain(net, ibe.SchemeUnchainedG1RFC9380)
	plaintext := []byte("drand")

	ct, err := EncryptArmored(plaintext, 1, chain)
	if err != nil {
		t.Fatalf("encrypt armored: %v", err)
	}

	client := fakeClient{net: net, chain: chain}
	got, err := Decrypt(context.Background(), ct, chain, client)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestDecryptTooEarly(t *testing.T) {
	net := newFakeNetwork(t, ibe.SchemeUnchainedG1RFC9380, 0x33)
	chain := beacon.ChainInfo{
		SchemeID:        string(ibe.SchemeUnchainedG1RFC9380),
		PeriodSeconds:   30,
		GenesisTimeUnix: 0,
		ChainHash:       "8990e7a9",
		PublicKey:       net.publicKey(),
	}
	round := uint64(1_000_000_000)

	ct, err := Encrypt([]byte("future"), round, chain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	client := fakeClient{net: net, chain: chain}
	_, err = Decrypt(context.Background(), ct, chain, client)
	if err == nil {
		t.Fatal("expected TooEarly error")
	}
	kind, ok := errs.KindOf(err)
	if !ok || kind != errs.TooEarly {
		t.Fatalf("expected TooEarly kind, got %v", err)
	}
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatal("expected *errs.Error")
	}
	if e.Round != round {
		t.Fatalf("unexpected round: %d", e.Round)
	}
	wantUnlock := time.Unix(29_999_999_970, 0)
	if !e.UnlockAt.Equal(wantUnlock) {
		t.Fatalf("unexpected unlock_at: %v want %v", e.UnlockAt, wantUnlock)
	}
}

func TestDecryptWrongRoundSignatureFails(t *testing.T) {
	net := newFakeNetwork(t, ibe.SchemeUnchainedG1RFC9380, 0x44)
	chain := testChain(net, ibe.SchemeUnchainedG1RFC9380)

	ct, err := Encrypt([]byte("hello world"), 100, chain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	wrongClient := wrongRoundClient{net: net}
	_, err = Decrypt(context.Background(), ct, chain, wrongClient)
	if err == nil {
		t.Fatal("expected authentication failure with wrong-round signature")
	}
}

type wrongRoundClient struct{ net fakeNetwork }

func (c wrongRoundClient) ChainInfo(ctx context.Context) (beacon.ChainInfo, error) {
	return beacon.ChainInfo{}, nil
}

func (c wrongRoundClient) FetchBeacon(ctx context.Context, round uint64) (beacon.Beacon, error) {
	return beacon.Beacon{Round: round, Signature: c.net.signature(round + 1)}, nil
}

func TestNewRecipientRejectsUnsupportedScheme(t *testing.T) {
	chain := beacon.ChainInfo{SchemeID: "bogus-scheme"}
	_, err := NewRecipient(1, chain)
	if err == nil {
		t.Fatal("expected rejection of unsupported scheme")
	}
	if kind, ok := errs.KindOf(err); !ok || kind != errs.UnsupportedScheme {
		t.Fatalf("expected UnsupportedScheme, got %v", err)
	}
}

func TestNewRecipientRejectsRoundZero(t *testing.T) {
	net := newFakeNetwork(t, ibe.SchemeUnchainedG1RFC9380, 0x55)
	chain := testChain(net, ibe.SchemeUnchainedG1RFC9380)
	if _, err := NewRecipient(0, chain); err == nil {
		t.Fatal("expected rejection of round 0")
	}
}

func TestTimeForRoundAndRoundForTime(t *testing.T) {
	chain := beacon.ChainInfo{GenesisTimeUnix: 0, PeriodSeconds: 30}

	if got := TimeForRound(chain, 1); got.Unix() != 0 {
		t.Fatalf("round 1 should be at genesis, got %v", got)
	}
	if got := TimeForRound(chain, 1_000_000_000); got.Unix() != 29_999_999_970 {
		t.Fatalf("unexpected unlock time: %v", got)
	}

	if got := RoundForTime(chain, time.Unix(0, 0)); got != 1 {
		t.Fatalf("expected round 1 at genesis, got %d", got)
	}
	if got := RoundForTime(chain, time.Unix(-10, 0)); got != 1 {
		t.Fatalf("expected round 1 before genesis, got %d", got)
	}
	if got := RoundForTime(chain, time.Unix(30, 0)); got != 2 {
		t.Fatalf("expected round 2 at exact period boundary, got %d", got)
	}
	if got := RoundForTime(chain, time.Unix(29, 0)); got != 1 {
		t.Fatalf("expected round 1 just before boundary, got %d", got)
	}
}

func TestIdentityUnwrapRejectsMismatchedChainHash(t *testing.T) {
	net := newFakeNetwork(t, ibe.SchemeUnchainedG1RFC9380, 0x66)
	chain := testChain(net, ibe.SchemeUnchainedG1RFC9380)

	ct, err := Encrypt([]byte("hello"), 1, chain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	otherChain := chain
	otherChain.ChainHash = "deadbeef"
	client := fakeClient{net: net, chain: otherChain}
	if _, err := Decrypt(context.Background(), ct, otherChain, client); err == nil {
		t.Fatal("expected rejection of mismatched chain hash")
	} else if kind, ok := errs.KindOf(err); !ok || kind != errs.ProtocolError {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}
