package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/tzcore/internal/definition"
	"github.com/roach88/tzcore/internal/temporal"
)

// marshalDefinition converts a zone definition to canonical JSON TEXT and
// returns it with its content ID.
func marshalDefinition(z definition.Zone) (data, contentID string, err error) {
	b, err := definition.Canonical(z)
	if err != nil {
		return "", "", fmt.Errorf("marshal definition: %w", err)
	}
	id, err := definition.ContentID(z)
	if err != nil {
		return "", "", fmt.Errorf("marshal definition: %w", err)
	}
	return string(b), id, nil
}

// unmarshalDefinition parses canonical JSON TEXT. Unknown fields are an
// error so a newer schema is never silently truncated.
func unmarshalDefinition(data string) (definition.Zone, error) {
	var z definition.Zone
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&z); err != nil {
		return definition.Zone{}, fmt.Errorf("unmarshal definition: %w", err)
	}
	return z, nil
}

func offsetFromSeconds(seconds int) (temporal.Offset, error) {
	o, err := temporal.NewOffset(seconds)
	if err != nil {
		return temporal.Offset{}, fmt.Errorf("stored offset: %w", err)
	}
	return o, nil
}
