package auth

import (
	"context"
	"strings"

	"github.com/culturalite/backend/internal/domain"
)

// Login authenticates a user and issues a token pair.
// Absent fields are a validation error; failed credentials are 401 and must
// not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	fields := map[string][]string{}
	if email == "" {
		fields["username"] = append(fields["username"], "This field is required.")
	}
	if password == "" {
		fields["password"] = append(fields["password"], "This field is required.")
	}
	if len(fields) > 0 {
		return LoginResult{}, domain.ErrValidationFields("invalid login data", fields)
	}

	u, p, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	toks, err := s.issueTokens(u, p)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Profile: p, Tokens: toks}, nil
}
