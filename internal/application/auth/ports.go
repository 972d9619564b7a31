package auth

import (
	"context"
	"time"

	"github.com/culturalite/backend/internal/domain"
)

/*
UserRepo
--------
Persistence port for users and their one-to-one profiles.
Only describes WHAT the auth flows need, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, domain.Profile, error)
	GetByID(ctx context.Context, id string) (domain.User, domain.Profile, error)
	EmailTaken(ctx context.Context, email string) (bool, error)

	// CreateWithProfile writes both rows in one transaction: both or neither.
	CreateWithProfile(ctx context.Context, u domain.User, p domain.Profile) (domain.User, domain.Profile, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies the access/refresh token pair. Claim extraction is
deterministic and side-effect-free; refresh tokens carry role and display
name so Refresh never needs the user store.
*/
type TokenClaims struct {
	UserID string
	Role   string
	Name   string
	JTI    string // refresh tokens only
	Exp    time.Time
}

type TokenSigner interface {
	SignAccessToken(userID, role, name string, ttl time.Duration) (string, error)
	SignRefreshToken(userID, role, name string, ttl time.Duration) (token string, jti string, err error)
	VerifyAccessToken(token string) (TokenClaims, error)
	VerifyRefreshToken(token string) (TokenClaims, error)
}

/*
TokenBlacklist
--------------
Revocation list for refresh token identifiers (jti). Backed by Redis.
AddIfAbsent is the atomic check-and-insert used for rotation: at most one
caller wins per token generation, even under concurrent refreshes.
*/
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	AddIfAbsent(ctx context.Context, jti string, ttl time.Duration) (won bool, err error)
	Contains(ctx context.Context, jti string) (bool, error)
}
