// Package armor implements the AGE ASCII-armor envelope: a
// BEGIN/END-delimited, 64-char-wrapped base64 encoding of the
// underlying binary AGE file, with no CRC footer.
package armor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ardents-project/tlock/errs"
)

const (
	beginLine = "-----BEGIN AGE ENCRYPTED FILE-----"
	endLine   = "-----END AGE ENCRYPTED FILE-----"
	lineWidth = 64
)

// Encode wraps raw AGE file bytes in the armor envelope.
func Encode(raw []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(beginLine)
	buf.WriteByte('\n')

	encoded := base64.StdEncoding.EncodeToString(raw)
	for len(encoded) > 0 {
		n := lineWidth
		if n > len(encoded) {
			n = len(encoded)
		}
		buf.WriteString(encoded[:n])
		buf.WriteByte('\n')
		encoded = encoded[n:]
	}

	buf.WriteString(endLine)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Decode reverses Encode. It tolerates CR/LF line endings and trailing
// whitespace on the boundary lines, but is strict about the base64
// alphabet of the body.
func Decode(armored []byte) ([]byte, error) {
	text := strings.ReplaceAll(string(armored), "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) < 2 {
		return nil, errs.New(errs.InputValidation, fmt.Errorf("armor: input too short to contain a boundary"))
	}
	if strings.TrimRight(lines[0], " \t") != beginLine {
		return nil, errs.New(errs.InputValidation, fmt.Errorf("armor: missing BEGIN boundary"))
	}
	last := len(lines) - 1
	if strings.TrimRight(lines[last], " \t") != endLine {
		return nil, errs.New(errs.InputValidation, fmt.Errorf("armor: missing END boundary"))
	}

	var b64 strings.Builder
	for _, line := range lines[1:last] {
		b64.WriteString(strings.TrimRight(line, " \t"))
	}
	raw, err := base64.StdEncoding.DecodeString(b64.String())
	if err != nil {
		return nil, errs.New(errs.InputValidation, fmt.Errorf("armor: invalid base64 body: %w", err))
	}
	return raw, nil
}

// IsArmored reports whether data looks like it begins with an armor
// boundary line, used to auto-detect armored input before decrypting.
func IsArmored(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte(beginLine))
}
