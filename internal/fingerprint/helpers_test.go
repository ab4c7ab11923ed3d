package fingerprint

import (
	"testing"

	"github.com/leapstack-labs/hashassets/internal/hasher"
	"github.com/stretchr/testify/require"
)

var testExtensions = []string{".js", ".css", ".png"}

func newTestHasher(t *testing.T) *hasher.Hasher {
	t.Helper()
	h, err := hasher.New("sha256", 16)
	require.NoError(t, err)
	return h
}

// fingerprinted returns the fingerprinted base name for content with ext.
func fingerprinted(t *testing.T, content, ext string) string {
	t.Helper()
	return newTestHasher(t).Digest([]byte(content)) + ext
}
