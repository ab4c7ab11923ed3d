// Package hasher computes the content digests used to name fingerprinted assets.
//
// A digest is the lowercase hex encoding of a hash over the file bytes,
// optionally truncated to a fixed number of characters. Digests carry no
// salt or seed, so identical bytes always produce identical names.
package hasher

import (
	"crypto/sha1" //nolint:gosec // G505: sha1 is offered for short cache-busting names, not security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

// MinLength is the shortest digest accepted when truncating.
const MinLength = 8

// Algorithm describes a hash function available for digests.
type Algorithm struct {
	Name string
	// Size is the digest size in bytes.
	Size int
	New  func() hash.Hash
}

// HexLen returns the width of the untruncated hex digest.
func (a *Algorithm) HexLen() int {
	return a.Size * 2
}

var algorithms = map[string]*Algorithm{
	"sha1": {
		Name: "sha1",
		Size: sha1.Size,
		New:  sha1.New,
	},
	"sha256": {
		Name: "sha256",
		Size: sha256.Size,
		New:  sha256.New,
	},
	"sha512": {
		Name: "sha512",
		Size: sha512.Size,
		New:  sha512.New,
	},
	"blake3": {
		Name: "blake3",
		Size: 32,
		New:  func() hash.Hash { return blake3.New() },
	},
}

// Lookup returns the algorithm registered under name (case-insensitive).
func Lookup(name string) (*Algorithm, error) {
	a, ok := algorithms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return a, nil
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hasher produces fixed-width digests with a single algorithm.
type Hasher struct {
	algorithm *Algorithm
	length    int
}

// New creates a Hasher for the named algorithm. A length of 0 keeps the
// full digest; otherwise the hex digest is truncated to length characters.
func New(name string, length int) (*Hasher, error) {
	a, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := ValidateLength(a, length); err != nil {
		return nil, err
	}
	if length == 0 {
		length = a.HexLen()
	}
	return &Hasher{algorithm: a, length: length}, nil
}

// ValidateLength checks that length is usable with the algorithm.
func ValidateLength(a *Algorithm, length int) error {
	if length == 0 {
		return nil
	}
	if length < MinLength || length > a.HexLen() {
		return fmt.Errorf("hash length %d out of range for %s (want 0 or %d..%d)", length, a.Name, MinLength, a.HexLen())
	}
	return nil
}

// Digest returns the lowercase hex digest of data.
func (h *Hasher) Digest(data []byte) string {
	hh := h.algorithm.New()
	_, _ = hh.Write(data)
	return hex.EncodeToString(hh.Sum(nil))[:h.length]
}

// Algorithm returns the name of the underlying algorithm.
func (h *Hasher) Algorithm() string {
	return h.algorithm.Name
}

// Length returns the digest width in hex characters.
func (h *Hasher) Length() int {
	return h.length
}
