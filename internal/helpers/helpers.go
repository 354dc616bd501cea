package helpers

import (
	"crypto/rand"
	"encoding/base64"

	"go.uber.org/zap"
)

// GenerateRandomString returns a URL-safe random string of the given length.
// It is used for run slugs.
func GenerateRandomString(length int) string {
	// Calculate the number of bytes needed to represent the string
	numBytes := (length * 6) / 8
	if (length*6)%8 != 0 {
		numBytes++
	}

	randomBytes := make([]byte, numBytes)
	_, err := rand.Read(randomBytes)
	if err != nil {
		zap.S().Errorw("generating random string", "error", err)
		return ""
	}

	randomString := base64.RawURLEncoding.EncodeToString(randomBytes)

	return randomString[:length]
}
