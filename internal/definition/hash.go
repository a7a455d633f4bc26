package definition

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainZone separates zone definition hashes from any other use of the
// same canonical bytes. The version suffix allows algorithm migration.
const DomainZone = "tzcore/zone/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Canonical returns the RFC 8785 encoding of z.
func Canonical(z Zone) ([]byte, error) {
	v, err := canonicalValue(z)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", z.ID, err)
	}
	b, err := MarshalCanonical(v)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", z.ID, err)
	}
	return b, nil
}

// ContentID returns the content-addressed identity of z. Two definitions
// with the same ID and the same rules hash identically regardless of field
// order in their source files.
func ContentID(z Zone) (string, error) {
	b, err := Canonical(z)
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainZone, b), nil
}

// MustContentID is like ContentID but panics on error.
func MustContentID(z Zone) string {
	id, err := ContentID(z)
	if err != nil {
		panic(err)
	}
	return id
}
