// Package age implements the AGE encrypt/decrypt orchestration: it
// composes the recipient-stanza header codec, the HKDF-derived header
// MAC, and the STREAM payload cipher into the end-to-end file format.
// Recipients and Identities are the only extension point; this package
// ships the no-op test double, and package tlock provides the tlock
// interpreter, per the "fixed stanza interpreters, not subclass
// polymorphism" design.
package age

import (
	"bufio"
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/ardents-project/tlock/age/internal/format"
	"github.com/ardents-project/tlock/errs"
	"github.com/ardents-project/tlock/internal/stream"
)

// FileKeySize is the size, in bytes, of the ephemeral per-file key.
const FileKeySize = 16

// payloadNonceSize is the size of the random salt prepended to the
// STREAM-sealed payload.
const payloadNonceSize = 16

// Stanza is a recipient record, mirroring the wire-level type in
// age/internal/format: a printable-ASCII type, ordered printable-ASCII
// args, and an arbitrary body.
type Stanza struct {
	Type string
	Args []string
	Body []byte
}

func (s Stanza) toFormat() format.Stanza {
	return format.Stanza{Type: s.Type, Args: s.Args, Body: s.Body}
}

func fromFormat(s format.Stanza) Stanza {
	return Stanza{Type: s.Type, Args: s.Args, Body: s.Body}
}

// Recipient produces the stanzas that let some matching Identity later
// recover fileKey.
type Recipient interface {
	Wrap(fileKey []byte) ([]Stanza, error)
}

// Identity recovers the file key from the stanzas of a parsed header.
// An Identity that does not recognize any stanza returns a
// ProtocolError (per the tlock wrapper's "exactly one tlock stanza"
// requirement) rather than silently skipping ahead; this package has
// no concept of "try the next identity".
type Identity interface {
	Unwrap(stanzas []Stanza) ([]byte, error)
}

func headerKey(fileKey []byte) ([]byte, error) {
	return hkdfExpand(fileKey, nil, "header")
}

func payloadKey(fileKey, nonce []byte) ([]byte, error) {
	return hkdfExpand(fileKey, nonce, "payload")
}

func hkdfExpand(ikm, salt []byte, info string) ([]byte, error) {
	out := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, []byte(info)), out); err != nil {
		return nil, fmt.Errorf("age: hkdf expand %q: %w", info, err)
	}
	return out, nil
}

// Encrypt produces a complete AGE file: header with one stanza set per
// recipient, HMAC-protected, followed by the STREAM-sealed payload.
func Encrypt(plaintext []byte, recipients ...Recipient) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, errs.New(errs.InputValidation, fmt.Errorf("age: at least one recipient is required"))
	}

	fileKey := make([]byte, FileKeySize)
	if _, err := rand.Read(fileKey); err != nil {
		return nil, errs.New(errs.Internal, fmt.Errorf("age: draw file key: %w", err))
	}

	var stanzas []format.Stanza
	for i, r := range recipients {
		wrapped, err := r.Wrap(fileKey)
		if err != nil {
			return nil, fmt.Errorf("age: recipient %d: %w", i, err)
		}
		for _, s := range wrapped {
			stanzas = append(stanzas, s.toFormat())
		}
	}

	macInput, err := format.MACInputBytes(stanzas)
	if err != nil {
		return nil, err
	}
	hkey, err := headerKey(fileKey)
	if err != nil {
		return nil, errs.New(errs.Internal, err)
	}
	mac := hmac.New(sha256.New, hkey)
	mac.Write(macInput)

	var out bytes.Buffer
	if err := format.WriteHeader(&out, stanzas, mac.Sum(nil)); err != nil {
		return nil, err
	}

	nonce := make([]byte, payloadNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, errs.New(errs.Internal, fmt.Errorf("age: draw payload nonce: %w", err))
	}
	out.Write(nonce)

	pkey, err := payloadKey(fileKey, nonce)
	if err != nil {
		return nil, errs.New(errs.Internal, err)
	}
	sealed, err := stream.Seal(plaintext, pkey)
	if err != nil {
		return nil, errs.New(errs.Internal, fmt.Errorf("age: seal payload: %w", err))
	}
	out.Write(sealed)

	return out.Bytes(), nil
}

// Decrypt parses an AGE file, recovers the file key via identity,
// verifies the header MAC, and opens the STREAM payload.
func Decrypt(input []byte, identity Identity) ([]byte, error) {
	r := bufio.NewReader(bytes.NewReader(input))
	hdr, err := format.ParseHeader(r)
	if err != nil {
		return nil, err
	}

	stanzas := make([]Stanza, len(hdr.Stanzas))
	for i, s := range hdr.Stanzas {
		stanzas[i] = fromFormat(s)
	}
	fileKey, err := identity.Unwrap(stanzas)
	if err != nil {
		return nil, err
	}

	hkey, err := headerKey(fileKey)
	if err != nil {
		return nil, errs.New(errs.Internal, err)
	}
	mac := hmac.New(sha256.New, hkey)
	mac.Write(hdr.MACInput)
	if !hmac.Equal(mac.Sum(nil), hdr.MAC) {
		return nil, errs.New(errs.Authentication, fmt.Errorf("age: header mac mismatch"))
	}

	nonce := make([]byte, payloadNonceSize)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, errs.New(errs.ProtocolError, fmt.Errorf("age: read payload nonce: %w", err))
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.New(errs.ProtocolError, fmt.Errorf("age: read payload: %w", err))
	}

	pkey, err := payloadKey(fileKey, nonce)
	if err != nil {
		return nil, errs.New(errs.Internal, err)
	}
	plaintext, err := stream.Open(rest, pkey)
	if err != nil {
		return nil, errs.New(errs.Authentication, err)
	}
	return plaintext, nil
}
