package auth

import (
	"context"
	"time"

	"github.com/culturalite/backend/internal/domain"
)

// Revoke blacklists a refresh token for its remaining lifetime.
// An unparseable or expired token is a client error, never fatal; the
// handler clears the cookie regardless of the outcome here.
func (s *Service) Revoke(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.ErrRefreshTokenRequired()
	}

	claims, err := s.signer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return domain.ErrRefreshTokenMalformed()
	}

	if err := s.blacklist.Add(ctx, claims.JTI, time.Until(claims.Exp)); err != nil {
		return domain.ErrBlacklistUnavailable(err)
	}
	return nil
}
