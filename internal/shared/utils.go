// Package shared provides small utility functions for generating random
// tokens.
package shared

import (
	"crypto/rand"
	"encoding/base64"
)

// MakeRandURLSafeString generates an opaque token from size random bytes,
// encoded with unpadded URL-safe base64. Suitable for bearer credentials such
// as API keys.
//
// It returns an error if the random number generator fails.
func MakeRandURLSafeString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
