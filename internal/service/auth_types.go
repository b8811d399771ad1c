package service

import (
	"context"
	"time"

	"luwakpos/internal/entity"
	"luwakpos/internal/utils"
)

type AuthConfig struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PasscodeTTL     time.Duration

	// AdminRole and StandardRole are the two schema roles users carry.
	AdminRole    string
	StandardRole string
}

type EmailSender interface {
	SendPasscodeEmail(ctx context.Context, email string, code string) error
}

type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) bool
}

// TokenDigester turns opaque tokens into the deterministic digests stored
// for them. Equal must compare in constant time.
type TokenDigester interface {
	Digest(token string) string
	Equal(token string, digest string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user *entity.User) (string, time.Duration, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptHasher struct{}

func (BcryptHasher) Hash(secret string) (string, error) {
	return utils.HashSecret(secret)
}

func (BcryptHasher) Verify(secret string, hash string) bool {
	return utils.VerifySecret(secret, hash)
}

// JWTAccessIssuer adapts the token codec to the session manager.
type JWTAccessIssuer struct {
	Manager *utils.TokenManager
}

func (j JWTAccessIssuer) IssueAccessToken(user *entity.User) (string, time.Duration, error) {
	return j.Manager.Issue(formatUserID(user.ID), user.Email, user.Role)
}
