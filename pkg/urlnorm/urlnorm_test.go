package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{"https url", "https://example.com", true},
		{"http url", "http://example.com/path?q=1", true},
		{"uppercase scheme", "HTTP://EXAMPLE.COM", true},
		{"subdomain", "http://www.example.co.uk", true},
		{"host with port", "http://example.com:8080/x", true},
		{"empty", "", false},
		{"bare hostname", "google.com", false},
		{"unknown scheme", "ftp://example.com", false},
		{"single-label host", "http://host", false},
		{"whitespace in host", "http://exa mple.com", false},
		{"scheme only", "http://", false},
		{"not a url", "not-a-valid-url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValid(tt.raw))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"lowercases scheme and host", "HTTP://EXAMPLE.org/path", "http://example.org/path"},
		{"lowercases path", "http://example.org/Some/Path", "http://example.org/some/path"},
		{"sorts query params", "http://example.org?two=b&one=a", "http://example.org?one=a&two=b"},
		{"keeps trailing slash", "http://example.org/path/", "http://example.org/path/"},
		{"keeps fragment", "http://example.org/path#Frag", "http://example.org/path#Frag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFingerprintInvariance(t *testing.T) {
	base, err := Fingerprint("http://example.org/path?one=a&two=b")
	require.NoError(t, err)
	assert.Len(t, base, 32)

	equivalents := []string{
		"HTTP://example.org/path?one=a&two=b",
		"http://EXAMPLE.ORG/path?one=a&two=b",
		"http://example.org/PATH?one=a&two=b",
		"http://example.org/path?two=b&one=a",
	}
	for _, raw := range equivalents {
		fp, err := Fingerprint(raw)
		require.NoError(t, err)
		assert.Equal(t, base, fp, "expected %q to share the fingerprint", raw)
	}
}

func TestFingerprintTrailingSlashDiffers(t *testing.T) {
	withSlash, err := Fingerprint("http://example.org/path/")
	require.NoError(t, err)
	withoutSlash, err := Fingerprint("http://example.org/path")
	require.NoError(t, err)

	assert.NotEqual(t, withSlash, withoutSlash)
}

func TestFingerprintDistinctURLsDiffer(t *testing.T) {
	a, err := Fingerprint("http://example.org/a")
	require.NoError(t, err)
	b, err := Fingerprint("http://example.org/b")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
