package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/culturalite/backend/internal/application/auth"
	"github.com/culturalite/backend/internal/domain"
)

const (
	typAccess  = "access"
	typRefresh = "refresh"
)

// JWTSigner issues and verifies the paired access/refresh tokens.
// Refresh tokens carry the same role/name claims as access tokens so a
// refresh can mint a new access token without touching the user store.
type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type tokenClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	Typ  string `json:"typ"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) sign(userID, role, name, typ, jti string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: role,
		Name: name,
		Typ:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTSigner) SignAccessToken(userID, role, name string, ttl time.Duration) (string, error) {
	return s.sign(userID, role, name, typAccess, "", ttl)
}

func (s *JWTSigner) SignRefreshToken(userID, role, name string, ttl time.Duration) (token string, jti string, err error) {
	jti = uuid.NewString()
	token, err = s.sign(userID, role, name, typRefresh, jti, ttl)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

func (s *JWTSigner) verify(token, typ string) (auth.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.TokenClaims{}, domain.ErrTokenExpired()
		}
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Typ != typ {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return auth.TokenClaims{
		UserID: claims.Subject,
		Role:   claims.Role,
		Name:   claims.Name,
		JTI:    claims.ID,
		Exp:    exp,
	}, nil
}

func (s *JWTSigner) VerifyAccessToken(token string) (auth.TokenClaims, error) {
	return s.verify(token, typAccess)
}

func (s *JWTSigner) VerifyRefreshToken(token string) (auth.TokenClaims, error) {
	claims, err := s.verify(token, typRefresh)
	if err != nil {
		return auth.TokenClaims{}, err
	}
	if claims.JTI == "" {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}
	return claims, nil
}
