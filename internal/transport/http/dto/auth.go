package dto

import (
	"time"

	"github.com/culturalite/backend/internal/domain"
)

type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	PasswordConfirm  string `json:"password_confirm"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	OrganizationName string `json:"organization_name"`
}

type LoginRequest struct {
	Username string `json:"username"` // the login email
	Password string `json:"password"`
}

// RefreshRequest is the body fallback for clients that cannot send the
// refresh cookie.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type ProfileView struct {
	Role             string `json:"role"`
	OrganizationName string `json:"organization_name"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	Website          string `json:"website,omitempty"`
	Bio              string `json:"bio,omitempty"`
	City             string `json:"city,omitempty"`
	Country          string `json:"country,omitempty"`
	IsVerified       bool   `json:"is_verified"`
}

type UserView struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	CreatedAt time.Time   `json:"created_at"`
	Profile   ProfileView `json:"profile"`
}

func NewUserView(u domain.User, p domain.Profile) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		Profile: ProfileView{
			Role:             p.Role,
			OrganizationName: p.OrganizationName,
			PhoneNumber:      p.PhoneNumber,
			Website:          p.Website,
			Bio:              p.Bio,
			City:             p.City,
			Country:          p.Country,
			IsVerified:       p.IsVerified,
		},
	}
}

type RegisterResponse struct {
	Message string   `json:"message"`
	User    UserView `json:"user"`
}

// LoginResponse carries the short-lived access token; the refresh token
// travels only in the HttpOnly cookie.
type LoginResponse struct {
	Access string   `json:"access"`
	User   UserView `json:"user"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Message string `json:"message"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}
