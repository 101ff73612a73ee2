// Package id mints short identifiers for analysis runs.
//
// An identifier is a random UUID encoded as unpadded base32 and
// lowercased: 26 characters that stay safe in URLs, file names, and
// log lines.
package id

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

var enc = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a new 26-character lowercase identifier.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ToLower(enc.EncodeToString(u[:])), nil
}
