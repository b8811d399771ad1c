package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashSecret hashes a human-entered secret (password or passcode) with a
// per-call salt. Such secrets are never looked up by value, only verified
// against a known record.
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func VerifySecret(secret string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// TokenDigester produces deterministic keyed digests of opaque tokens so
// that storage can be queried by exact digest. Deliberately not salted:
// refresh tokens are looked up by value, not verified against a known row.
type TokenDigester struct {
	Key []byte
}

func (d TokenDigester) Digest(token string) string {
	mac := hmac.New(sha256.New, d.Key)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Equal compares a plaintext token against a stored digest in constant time.
func (d TokenDigester) Equal(token string, digest string) bool {
	return hmac.Equal([]byte(d.Digest(token)), []byte(digest))
}

func GenerateRandomToken(size int) (string, error) {
	buffer := make([]byte, size)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// GeneratePasscode returns a 6-digit numeric verification code.
func GeneratePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
