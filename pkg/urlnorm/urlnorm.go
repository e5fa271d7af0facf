// Package urlnorm validates URL syntax and canonicalizes URLs into a
// stable fingerprint used for deduplication.
package urlnorm

import (
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// fingerprintSize is 16 bytes, a 128-bit digest rendered as 32 hex chars.
const fingerprintSize = 16

// hostPattern requires a dotted host with no embedded whitespace, so
// single-label hosts like "http://host" are rejected.
var hostPattern = regexp.MustCompile(`^\S+\.\S+$`)

// IsValid reports whether raw is an acceptable absolute http/https URL.
// Empty strings, bare hostnames without a scheme, unknown schemes, and
// hosts without a dot are all invalid.
func IsValid(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	return hostPattern.MatchString(u.Host)
}

// Normalize canonicalizes raw: scheme, host, and path are lowercased and
// query parameters are re-serialized in sorted key order. The fragment is
// carried through untouched, and a trailing slash on the path stays
// significant. The caller is expected to have validated syntax first.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.ToLower(u.Path)
	u.RawPath = ""

	if u.RawQuery != "" {
		// Values.Encode serializes in sorted key order.
		u.RawQuery = u.Query().Encode()
	}

	return u.String(), nil
}

// Fingerprint returns the hex-encoded 128-bit BLAKE2b digest of the
// normalized form of raw. Two URLs that differ only in scheme/host/path
// case or query-parameter order produce the same fingerprint.
func Fingerprint(raw string) (string, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return "", err
	}

	h, err := blake2b.New(fingerprintSize, nil)
	if err != nil {
		return "", err
	}
	h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil)), nil
}
