// Package stream implements the age STREAM construction: ChaCha20-Poly1305
// applied to fixed-size chunks, each under its own nonce built from a
// monotonically increasing counter and a last-chunk flag.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChunkSize is the maximum plaintext size of a single STREAM chunk.
const ChunkSize = 64 * 1024

// TagSize is the Poly1305 authentication tag appended to every chunk.
const TagSize = chacha20poly1305.Overhead

// KeySize is the ChaCha20-Poly1305 key size.
const KeySize = chacha20poly1305.KeySize

// ErrAuthentication is returned when any chunk fails Poly1305
// verification.
var ErrAuthentication = errors.New("stream: chunk authentication failed")

// nonce builds the 12-byte STREAM nonce: an 11-byte big-endian counter
// followed by a 1-byte last-chunk flag. The counter is a uint64, which
// can never exceed the 11-byte (88-bit) field it's written into, so no
// overflow check is needed here.
func nonce(counter uint64, last bool) []byte {
	var buf [chacha20poly1305.NonceSize]byte
	// 11 bytes of big-endian counter: write the low 8 bytes of a uint64
	// into the last 8 of those 11 bytes, leaving the top 3 at zero (no
	// real payload approaches 2^64 chunks).
	binary.BigEndian.PutUint64(buf[3:11], counter)
	if last {
		buf[11] = 0x01
	}
	return buf[:]
}

// Seal chunks plaintext into ChunkSize-byte pieces and seals each with
// ChaCha20-Poly1305 under key, emitting the concatenation of sealed
// chunks. A plaintext whose length is an exact multiple of ChunkSize gets
// an explicit empty final chunk so Open can find the last-chunk flag.
func Seal(plaintext []byte, key []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("stream: new aead: %w", err)
	}

	out := make([]byte, 0, len(plaintext)+TagSize*(len(plaintext)/ChunkSize+1))
	var counter uint64
	for {
		end := counter*ChunkSize + ChunkSize
		if end > uint64(len(plaintext)) {
			end = uint64(len(plaintext))
		}
		chunk := plaintext[counter*ChunkSize : end]
		// A chunk that exactly fills ChunkSize is never the last one, even
		// if it consumes the rest of the plaintext: an explicit empty
		// chunk with the last flag follows, so Open can always find the
		// boundary without knowing the plaintext length up front.
		last := end == uint64(len(plaintext)) && uint64(len(chunk)) < ChunkSize

		n := nonce(counter, last)
		out = aead.Seal(out, n, chunk, nil)

		if last {
			return out, nil
		}
		counter++
	}
}

// Open is the inverse of Seal: it verifies and decrypts every chunk,
// returning ErrAuthentication on the first tag failure.
func Open(ciphertext []byte, key []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("stream: new aead: %w", err)
	}

	const sealedChunk = ChunkSize + TagSize
	out := make([]byte, 0, len(ciphertext))
	var counter uint64
	rest := ciphertext
	for {
		last := len(rest) <= sealedChunk
		size := sealedChunk
		if last {
			size = len(rest)
		}
		if size < TagSize {
			return nil, ErrAuthentication
		}
		chunk := rest[:size]
		rest = rest[size:]

		n := nonce(counter, last)
		plain, err := aead.Open(out, n, chunk, nil)
		if err != nil {
			return nil, ErrAuthentication
		}
		out = plain

		if last {
			if len(rest) != 0 {
				return nil, ErrAuthentication
			}
			return out, nil
		}
		counter++
	}
}
