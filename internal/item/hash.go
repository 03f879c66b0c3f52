package item

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes. The version suffix allows the
// algorithm to change without colliding with stored hashes.
const (
	DomainItem  = "cinder/item/v1"
	DomainTrace = "cinder/trace/v1"
)

// HashWithDomain computes SHA256(domain + 0x00 + data) as lowercase hex.
// The null byte keeps the domain and data boundary unambiguous.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies an item's content. Items with equal keys and equal
// props have equal fingerprints regardless of map order or Unicode form.
func Fingerprint(it Item) (string, error) {
	props := it.Props
	if props == nil {
		props = map[string]any{}
	}
	data, err := Canonical(map[string]any{
		"key":   it.Key,
		"props": props,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint %q: %w", it.Key, err)
	}
	return HashWithDomain(DomainItem, data), nil
}

// MustFingerprint is Fingerprint for items already known to be valid.
func MustFingerprint(it Item) string {
	fp, err := Fingerprint(it)
	if err != nil {
		panic(err)
	}
	return fp
}
