package auth

import (
	"time"

	"github.com/culturalite/backend/internal/domain"
)

type Service struct {
	users     UserRepo
	hasher    PasswordHasher
	signer    TokenSigner
	blacklist TokenBlacklist

	accessTTL  time.Duration
	refreshTTL time.Duration
	rotate     bool
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// RotateRefreshTokens controls whether a successful refresh blacklists
	// the old refresh token and issues a new one. When disabled the same
	// refresh token stays valid until expiry or logout.
	RotateRefreshTokens bool
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, blacklist TokenBlacklist, cfg Config) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		signer:     signer,
		blacklist:  blacklist,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		rotate:     cfg.RotateRefreshTokens,
	}
}

// AuthTokens is the common token output for handlers/DTO mapping.
// The refresh token is transported only via HttpOnly cookie; handlers must
// never place it in a response body.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	Rotated      bool // true when RefreshToken replaces a previous one
}

type LoginResult struct {
	User    domain.User
	Profile domain.Profile
	Tokens  AuthTokens
}

// issueTokens issues an access/refresh pair for a user.
func (s *Service) issueTokens(u domain.User, p domain.Profile) (AuthTokens, error) {
	name := domain.DisplayName(u, p)

	access, err := s.signer.SignAccessToken(u.ID, p.Role, name, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}
	refresh, _, err := s.signer.SignRefreshToken(u.ID, p.Role, name, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}
