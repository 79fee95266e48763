package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateID returns a short URL-safe identifier with 72 bits of entropy.
// Collisions are left to the store's unique _id index; at this scale they do
// not happen in practice.
func GenerateID() string {
	const numBytes = 9
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("shortid: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
