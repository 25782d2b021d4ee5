package tlock

import (
	"context"

	"github.com/ardents-project/tlock/age"
	"github.com/ardents-project/tlock/age/armor"
	"github.com/ardents-project/tlock/beacon"
)

// Encrypt builds a complete AGE file whose single recipient is round
// under chain.
func Encrypt(plaintext []byte, round uint64, chain beacon.ChainInfo) ([]byte, error) {
	recipient, err := NewRecipient(round, chain)
	if err != nil {
		return nil, err
	}
	return age.Encrypt(plaintext, recipient)
}

// EncryptArmored is Encrypt followed by ASCII armoring.
func EncryptArmored(plaintext []byte, round uint64, chain beacon.ChainInfo) ([]byte, error) {
	raw, err := Encrypt(plaintext, round, chain)
	if err != nil {
		return nil, err
	}
	return armor.Encode(raw), nil
}

// Decrypt parses ciphertext (auto-detecting armor), fetches the
// beacon for its bound round via client, and recovers the plaintext.
// ctx governs the beacon fetch only.
func Decrypt(ctx context.Context, ciphertext []byte, chain beacon.ChainInfo, client beacon.Client) ([]byte, error) {
	raw := ciphertext
	if armor.IsArmored(ciphertext) {
		unarmored, err := armor.Decode(ciphertext)
		if err != nil {
			return nil, err
		}
		raw = unarmored
	}
	identity := NewIdentity(ctx, chain, client)
	return age.Decrypt(raw, identity)
}
