package auth

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	// APIKeyPrefix starts every generated key.
	APIKeyPrefix = "HIJAB-"
	apiKeyLength = 8
	base36       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var apiKeyPattern = regexp.MustCompile(`^HIJAB-[0-9A-Z]{8}$`)

// GenerateAPIKey returns HIJAB- followed by 8 random uppercase base-36 characters.
// Keys are unique with high probability only.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, apiKeyLength)
	limit := big.NewInt(int64(len(base36)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = base36[n.Int64()]
	}
	return APIKeyPrefix + string(buf), nil
}

// IsWellFormedAPIKey reports whether key has the generated shape.
func IsWellFormedAPIKey(key string) bool {
	return apiKeyPattern.MatchString(key)
}
