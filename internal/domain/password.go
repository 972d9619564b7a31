package domain

import "strings"

// commonPasswords is a small deny-list of frequently used passwords.
var commonPasswords = map[string]struct{}{
	"password": {}, "password123": {}, "123456": {}, "123456789": {}, "qwerty": {},
	"abc123": {}, "password1": {}, "admin": {}, "letmein": {}, "welcome": {},
	"monkey": {}, "1234567890": {}, "dragon": {}, "master": {}, "hello": {},
	"login": {}, "pass": {}, "admin123": {}, "root": {}, "user": {},
}

// similarityThreshold is the minimum attribute/password length considered
// for the substring similarity check.
const similarityThreshold = 3

// PasswordAttribute names a user attribute a password must not resemble.
type PasswordAttribute struct {
	Name  string // human-readable, used in violation messages
	Value string
}

// ValidatePassword checks the password policy and returns every violated
// rule, not just the first: minimum 8 characters, at least one uppercase
// letter, one lowercase letter and one digit, not a common password, and not
// too similar to any of the given user attributes (case-insensitive
// substring containment in either direction).
func ValidatePassword(password string, attrs []PasswordAttribute) []string {
	var violations []string

	if len(password) < 8 {
		violations = append(violations, "Password must be at least 8 characters long.")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		violations = append(violations, "Password must contain at least one uppercase letter.")
	}
	if !hasLower {
		violations = append(violations, "Password must contain at least one lowercase letter.")
	}
	if !hasDigit {
		violations = append(violations, "Password must contain at least one number.")
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		violations = append(violations, "This password is too common. Please choose a more secure password.")
	}

	lower := strings.ToLower(password)
	for _, a := range attrs {
		v := strings.ToLower(strings.TrimSpace(a.Value))
		if v == "" {
			continue
		}
		if (len(v) >= similarityThreshold && strings.Contains(lower, v)) ||
			(len(lower) >= similarityThreshold && strings.Contains(v, lower)) {
			violations = append(violations, "The password is too similar to your "+a.Name+".")
		}
	}

	return violations
}
