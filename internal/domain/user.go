package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// Profile is the one-to-one vendor/admin extension of a User.
// IsVerified is admin-set only and never client-writable.
type Profile struct {
	ID               string
	UserID           string
	Role             string
	OrganizationName string
	PhoneNumber      string
	Website          string
	Bio              string
	Avatar           string
	City             string
	Country          string
	IsVerified       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DisplayName resolves the best available name for token claims and
// public representations: full name, else organization, else the login email.
func DisplayName(u User, p Profile) string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if p.OrganizationName != "" {
		return p.OrganizationName
	}
	return u.Email
}
