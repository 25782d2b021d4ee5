package format

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/ardents-project/tlock/errs"
)

// VersionLine is the literal first line of every AGE header.
const VersionLine = "age-encryption.org/v1"

const bodyLineWidth = 64

// b64 is the unpadded standard-alphabet encoding used for stanza
// bodies and the header MAC.
var b64 = base64.RawStdEncoding

// Header is a parsed AGE header: its stanzas, the raw bytes covered by
// the HMAC (VersionLine through the literal "---", inclusive, with no
// trailing space or newline), and the MAC itself as read from the
// trailing line.
type Header struct {
	Stanzas  []Stanza
	MACInput []byte
	MAC      []byte
}

// WriteStanza appends the wire encoding of one stanza to buf: the
// "-> type arg..." line followed by the base64 body, wrapped at 64
// characters per line, with the exact-multiple-of-64 trailing empty
// line rule.
func WriteStanza(buf *bytes.Buffer, s Stanza) error {
	if err := s.Validate(); err != nil {
		return err
	}
	buf.WriteString("-> ")
	buf.WriteString(s.Type)
	for _, arg := range s.Args {
		buf.WriteByte(' ')
		buf.WriteString(arg)
	}
	buf.WriteByte('\n')

	encoded := b64.EncodeToString(s.Body)
	for len(encoded) >= bodyLineWidth {
		buf.WriteString(encoded[:bodyLineWidth])
		buf.WriteByte('\n')
		encoded = encoded[bodyLineWidth:]
	}
	// The remainder (possibly empty) is always strictly shorter than
	// bodyLineWidth: it is what terminates the body, including the
	// explicit empty line when the body's base64 is an exact multiple
	// of 64 chars long.
	buf.WriteString(encoded)
	buf.WriteByte('\n')
	return nil
}

// WriteHeader writes the canonical VersionLine + stanzas + "--- mac\n"
// header to w. mac must already be computed over MACInputBytes.
func WriteHeader(w io.Writer, stanzas []Stanza, mac []byte) error {
	var buf bytes.Buffer
	buf.WriteString(VersionLine)
	buf.WriteByte('\n')
	for _, s := range stanzas {
		if err := WriteStanza(&buf, s); err != nil {
			return err
		}
	}
	buf.WriteString("---")
	buf.WriteByte(' ')
	buf.WriteString(b64.EncodeToString(mac))
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// MACInputBytes renders the portion of the header covered by the MAC:
// VersionLine, every stanza, and the literal "---" with no trailing
// space or newline. Callers compute the MAC over this and then call
// WriteHeader with the result.
func MACInputBytes(stanzas []Stanza) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(VersionLine)
	buf.WriteByte('\n')
	for _, s := range stanzas {
		if err := WriteStanza(&buf, s); err != nil {
			return nil, err
		}
	}
	buf.WriteString("---")
	return buf.Bytes(), nil
}

// ParseHeader reads a canonical AGE header from r, returning the
// parsed stanzas, the exact MAC-covered byte range, and the MAC bytes.
// r is left positioned immediately after the header's trailing
// newline, at the start of the payload.
func ParseHeader(r *bufio.Reader) (Header, error) {
	var acc bytes.Buffer

	first, err := r.ReadString('\n')
	if err != nil {
		return Header{}, errs.New(errs.ProtocolError, fmt.Errorf("format: read version line: %w", err))
	}
	if first != VersionLine+"\n" {
		return Header{}, errs.Newf(errs.ProtocolError, "format: unexpected version line %q", strings.TrimSuffix(first, "\n"))
	}
	acc.WriteString(first)

	var stanzas []Stanza
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return Header{}, errs.New(errs.ProtocolError, fmt.Errorf("format: unexpected end of header: %w", err))
		}

		switch {
		case strings.HasPrefix(line, "-> "):
			acc.WriteString(line)
			stanza, err := parseStanzaLine(line)
			if err != nil {
				return Header{}, err
			}
			bodyB64, bodyRaw, err := readBody(r)
			if err != nil {
				return Header{}, err
			}
			acc.Write(bodyRaw)
			body, err := b64.DecodeString(bodyB64)
			if err != nil {
				return Header{}, errs.New(errs.InputValidation, fmt.Errorf("format: stanza body base64: %w", err))
			}
			stanza.Body = body
			stanzas = append(stanzas, stanza)

		case strings.HasPrefix(line, "---"):
			acc.WriteString("---")
			rest := strings.TrimSuffix(line, "\n")
			rest = strings.TrimPrefix(rest, "---")
			rest = strings.TrimPrefix(rest, " ")
			mac, err := b64.DecodeString(rest)
			if err != nil {
				return Header{}, errs.New(errs.InputValidation, fmt.Errorf("format: header mac base64: %w", err))
			}
			return Header{Stanzas: stanzas, MACInput: acc.Bytes(), MAC: mac}, nil

		default:
			return Header{}, errs.Newf(errs.ProtocolError, "format: malformed header line %q", strings.TrimSuffix(line, "\n"))
		}
	}
}

func parseStanzaLine(line string) (Stanza, error) {
	trimmed := strings.TrimSuffix(line, "\n")
	fields := strings.Split(strings.TrimPrefix(trimmed, "-> "), " ")
	if len(fields) == 0 || fields[0] == "" {
		return Stanza{}, errs.New(errs.ProtocolError, fmt.Errorf("format: stanza line missing type"))
	}
	s := Stanza{Type: fields[0], Args: fields[1:]}
	if err := s.Validate(); err != nil {
		return Stanza{}, err
	}
	return s, nil
}

// readBody consumes stanza body lines until one shorter than
// bodyLineWidth (including empty) terminates it, returning the
// concatenated base64 text and the raw bytes consumed (for MAC
// accounting).
func readBody(r *bufio.Reader) (b64Text string, raw []byte, err error) {
	var text strings.Builder
	var rawBuf bytes.Buffer
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return "", nil, errs.New(errs.ProtocolError, fmt.Errorf("format: unexpected end of stanza body: %w", err))
		}
		rawBuf.WriteString(line)
		trimmed := strings.TrimSuffix(line, "\n")
		text.WriteString(trimmed)
		if len(trimmed) < bodyLineWidth {
			return text.String(), rawBuf.Bytes(), nil
		}
	}
}
