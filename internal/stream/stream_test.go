package stream

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("random key: %v", err)
	}
	return key
}

func TestSealOpenRoundTripSizes(t *testing.T) {
	sizes := []int{0, 1, 65535, 65536, 65537, 131072}
	key := testKey(t)
	for _, size := range sizes {
		size := size
		t.Run("", func(t *testing.T) {
			plaintext := make([]byte, size)
			if _, err := rand.Read(plaintext); err != nil {
				t.Fatalf("random plaintext: %v", err)
			}
			ct, err := Seal(plaintext, key)
			if err != nil {
				t.Fatalf("seal: %v", err)
			}
			pt, err := Open(ct, key)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if !bytes.Equal(pt, plaintext) {
				t.Fatalf("round trip mismatch at size %d", size)
			}
		})
	}
}

func TestSealEmitsTrailingEmptyChunkOnMultiple(t *testing.T) {
	key := testKey(t)
	plaintext := make([]byte, ChunkSize)
	ct, err := Seal(plaintext, key)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	wantLen := (ChunkSize + TagSize) + TagSize
	if len(ct) != wantLen {
		t.Fatalf("expected trailing empty chunk, got ciphertext length %d want %d", len(ct), wantLen)
	}
}

func TestOpenRejectsBitFlip(t *testing.T) {
	key := testKey(t)
	plaintext := bytes.Repeat([]byte{0xAB}, 200)
	ct, err := Seal(plaintext, key)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	ct[10] ^= 0x01
	if _, err := Open(ct, key); err == nil {
		t.Fatal("expected authentication failure after bit flip")
	}
}

func TestOpenRejectsBitFlipInLastChunk(t *testing.T) {
	key := testKey(t)
	plaintext := make([]byte, ChunkSize+200)
	ct, err := Seal(plaintext, key)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	ct[len(ct)-1] ^= 0x01
	if _, err := Open(ct, key); err == nil {
		t.Fatal("expected authentication failure after last-chunk bit flip")
	}
}

func TestOpenRejectsTruncatedCiphertext(t *testing.T) {
	key := testKey(t)
	plaintext := make([]byte, ChunkSize+1)
	ct, err := Seal(plaintext, key)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	truncated := ct[:len(ct)-5]
	if _, err := Open(truncated, key); err == nil {
		t.Fatal("expected failure on truncated ciphertext")
	}
}
