package age

import (
	"fmt"

	"github.com/ardents-project/tlock/errs"
)

// noopStanzaType is a testing/debug recipient that stores the file key
// directly in the stanza body. It exists so the header/MAC/STREAM
// pipeline can be exercised without pulling in the IBE machinery.
const noopStanzaType = "no-op"

// NoopRecipient wraps the file key as an unencrypted "no-op" stanza.
type NoopRecipient struct{}

func (NoopRecipient) Wrap(fileKey []byte) ([]Stanza, error) {
	return []Stanza{{Type: noopStanzaType, Body: append([]byte(nil), fileKey...)}}, nil
}

// NoopIdentity recovers the file key from a "no-op" stanza.
type NoopIdentity struct{}

func (NoopIdentity) Unwrap(stanzas []Stanza) ([]byte, error) {
	for _, s := range stanzas {
		if s.Type == noopStanzaType {
			return s.Body, nil
		}
	}
	return nil, errs.New(errs.ProtocolError, fmt.Errorf("age: no %q stanza present", noopStanzaType))
}
