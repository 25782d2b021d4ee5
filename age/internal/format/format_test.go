package format

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/ardents-project/tlock/errs"
)

func TestStanzaValidateRejectsNonPrintable(t *testing.T) {
	s := Stanza{Type: "tlock", Args: []string{"100", "ab\tcd"}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected rejection of a tab character in an arg")
	} else if kind, ok := errs.KindOf(err); !ok || kind != errs.InputValidation {
		t.Fatalf("expected InputValidation, got %v", err)
	}
}

func TestStanzaValidateRejectsEmptyArg(t *testing.T) {
	s := Stanza{Type: "tlock", Args: []string{""}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected rejection of an empty arg")
	}
}

func TestHeaderRoundTripByteForByte(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		bytes.Repeat([]byte{0x42}, 48), // 64 base64 chars exactly
		bytes.Repeat([]byte{0x7}, 200),
	}
	for _, body := range cases {
		stanzas := []Stanza{
			{Type: "tlock", Args: []string{"100", "8990e7a9"}, Body: body},
			{Type: "no-op", Args: nil, Body: []byte("x")},
		}
		macInput, err := MACInputBytes(stanzas)
		if err != nil {
			t.Fatalf("mac input: %v", err)
		}
		mac := make([]byte, 32)
		if _, err := rand.Read(mac); err != nil {
			t.Fatalf("random mac: %v", err)
		}

		var out bytes.Buffer
		if err := WriteHeader(&out, stanzas, mac); err != nil {
			t.Fatalf("write header: %v", err)
		}

		parsed, err := ParseHeader(bufio.NewReader(bytes.NewReader(out.Bytes())))
		if err != nil {
			t.Fatalf("parse header: %v", err)
		}

		if !bytes.Equal(parsed.MAC, mac) {
			t.Fatalf("mac mismatch: got %x want %x", parsed.MAC, mac)
		}
		if !bytes.Equal(parsed.MACInput, macInput) {
			t.Fatalf("mac input mismatch:\ngot  %q\nwant %q", parsed.MACInput, macInput)
		}
		if len(parsed.Stanzas) != len(stanzas) {
			t.Fatalf("expected %d stanzas, got %d", len(stanzas), len(parsed.Stanzas))
		}
		for i, want := range stanzas {
			got := parsed.Stanzas[i]
			if got.Type != want.Type || !bytes.Equal(got.Body, want.Body) {
				t.Fatalf("stanza %d mismatch: got %+v want %+v", i, got, want)
			}
		}

		var reserialized bytes.Buffer
		if err := WriteHeader(&reserialized, parsed.Stanzas, parsed.MAC); err != nil {
			t.Fatalf("reserialize: %v", err)
		}
		if !bytes.Equal(reserialized.Bytes(), out.Bytes()) {
			t.Fatalf("canonical round trip mismatch:\ngot  %q\nwant %q", reserialized.Bytes(), out.Bytes())
		}
	}
}

func TestParseHeaderRejectsBadVersionLine(t *testing.T) {
	input := "age-encryption.org/v2\n--- AAAA\n"
	if _, err := ParseHeader(bufio.NewReader(strings.NewReader(input))); err == nil {
		t.Fatal("expected rejection of a mismatched version line")
	}
}

func TestParseHeaderRejectsMalformedLine(t *testing.T) {
	input := VersionLine + "\ngarbage line without marker\n--- AAAA\n"
	if _, err := ParseHeader(bufio.NewReader(strings.NewReader(input))); err == nil {
		t.Fatal("expected rejection of a line with no -> or --- marker")
	}
}

func TestWriteStanzaEmitsTrailingEmptyLineOnExactMultiple(t *testing.T) {
	body := bytes.Repeat([]byte{0x11}, 48) // base64 of 48 bytes is exactly 64 chars
	var buf bytes.Buffer
	if err := WriteStanza(&buf, Stanza{Type: "tlock", Args: []string{"1"}, Body: body}); err != nil {
		t.Fatalf("write stanza: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if lines[len(lines)-1] != "" {
		t.Fatalf("expected a trailing empty body line, got %q", lines[len(lines)-1])
	}
}
