package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key namespaces.
const (
	NamespaceLicense = "license"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// LicenseKey returns the cache key for a license text classified by the
// scanner identified by scanner. Different scanners may disagree, so the
// scanner is part of the key.
func LicenseKey(scanner, text string) string {
	return NamespaceLicense + ":" + scanner + ":" + Hash([]byte(text))
}
