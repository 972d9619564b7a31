package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/culturalite/backend/internal/domain"
)

type RegisterInput struct {
	Email            string
	Password         string
	PasswordConfirm  string
	FirstName        string
	LastName         string
	OrganizationName string
}

// Register creates a User and its vendor Profile in one transaction.
// Validation reports every violated rule in a single response; the session
// is NOT authenticated afterwards.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, domain.Profile, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.OrganizationName = strings.TrimSpace(in.OrganizationName)

	fields := map[string][]string{}
	addViolation := func(field, msg string) {
		fields[field] = append(fields[field], msg)
	}

	if in.Email == "" {
		addViolation("email", "This field is required.")
	} else if !strings.Contains(in.Email, "@") {
		addViolation("email", "Enter a valid email address.")
	} else {
		taken, err := s.users.EmailTaken(ctx, in.Email)
		if err != nil {
			return domain.User{}, domain.Profile{}, err
		}
		if taken {
			addViolation("email", "A user with this email already exists.")
		}
	}

	if in.FirstName == "" {
		addViolation("first_name", "This field is required.")
	}
	if in.LastName == "" {
		addViolation("last_name", "This field is required.")
	}

	if in.Password == "" {
		addViolation("password", "This field is required.")
	} else {
		for _, v := range domain.ValidatePassword(in.Password, []domain.PasswordAttribute{
			{Name: "email", Value: in.Email},
			{Name: "first name", Value: in.FirstName},
			{Name: "last name", Value: in.LastName},
			{Name: "organization name", Value: in.OrganizationName},
		}) {
			addViolation("password", v)
		}
	}
	if in.PasswordConfirm != in.Password {
		addViolation("password_confirm", "Password confirmation doesn't match password.")
	}

	if len(fields) > 0 {
		return domain.User{}, domain.Profile{}, domain.ErrValidationFields("invalid registration data", fields)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, domain.Profile{}, err
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	p := domain.Profile{
		ID:               uuid.NewString(),
		UserID:           u.ID,
		Role:             string(domain.RoleVendor), // never client-chosen
		OrganizationName: in.OrganizationName,
	}

	createdU, createdP, err := s.users.CreateWithProfile(ctx, u, p)
	if err != nil {
		// the EmailTaken pre-check can lose a race to a concurrent insert
		var de *domain.Error
		if errors.As(err, &de) && de.Kind == domain.KindConflict {
			return domain.User{}, domain.Profile{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.Profile{}, err
	}
	return createdU, createdP, nil
}
