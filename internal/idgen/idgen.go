// Package idgen generates creation-time event identifiers.
//
// IDs combine a sortable local timestamp with a short nanoid suffix, e.g.
// "20260209_221530-x7Kq2p". The timestamp keeps archival records ordered by
// creation when listed by name; the suffix keeps IDs unique when two events
// are created within the same second.
package idgen

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet defines the character set used for the random suffix.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SuffixLength is the number of random characters appended to the timestamp.
var SuffixLength = 6

// timeLayout matches the archival file naming scheme: 20260209_221530.
const timeLayout = "20060102_150405"

// NewEventID returns a new event identifier for the given creation time.
func NewEventID(createdAt time.Time) (string, error) {
	suffix, err := nanoid.Generate(Alphabet, SuffixLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return createdAt.Format(timeLayout) + "-" + suffix, nil
}
