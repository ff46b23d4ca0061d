package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"
)

// ComputeHMAC256 signs a payload with HMAC-SHA256 and returns the hex digest.
func ComputeHMAC256(toSign []byte, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(toSign)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// VerifyHMAC recomputes the signature for a payload and compares it to the
// provided one in constant time.
func VerifyHMAC(secretKey string, toSign []byte, providedSign string) bool {
	signed := ComputeHMAC256(toSign, secretKey)
	return hmac.Equal([]byte(signed), []byte(providedSign))
}

// GenerateMagicCode returns a random numeric code of the given length,
// suitable for email sign-in challenges.
func GenerateMagicCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("magic code length must be positive")
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate magic code: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
