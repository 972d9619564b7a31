package auth

import (
	"context"
	"time"

	"github.com/culturalite/backend/internal/domain"
)

// Refresh exchanges a valid refresh token for a new access token.
// With rotation enabled, blacklisting the old token and winning the race is
// one atomic operation: a second concurrent use of the same token fails.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	if refreshToken == "" {
		return AuthTokens{}, domain.ErrRefreshTokenRequired()
	}

	claims, err := s.signer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, domain.ErrRefreshTokenInvalid()
	}

	if !s.rotate {
		blacklisted, err := s.blacklist.Contains(ctx, claims.JTI)
		if err != nil {
			return AuthTokens{}, domain.ErrBlacklistUnavailable(err)
		}
		if blacklisted {
			return AuthTokens{}, domain.ErrRefreshTokenInvalid()
		}
		access, err := s.signer.SignAccessToken(claims.UserID, claims.Role, claims.Name, s.accessTTL)
		if err != nil {
			return AuthTokens{}, err
		}
		return AuthTokens{AccessToken: access}, nil
	}

	won, err := s.blacklist.AddIfAbsent(ctx, claims.JTI, time.Until(claims.Exp))
	if err != nil {
		return AuthTokens{}, domain.ErrBlacklistUnavailable(err)
	}
	if !won {
		// already rotated out or revoked
		return AuthTokens{}, domain.ErrRefreshTokenInvalid()
	}

	access, err := s.signer.SignAccessToken(claims.UserID, claims.Role, claims.Name, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}
	newRefresh, _, err := s.signer.SignRefreshToken(claims.UserID, claims.Role, claims.Name, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: access, RefreshToken: newRefresh, Rotated: true}, nil
}
