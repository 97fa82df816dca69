package model

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/badoux/checkmail"
)

// UserProfile is the singleton profile document. It always exists; a fresh
// store is seeded with DefaultProfile.
type UserProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Validate checks the profile's field constraints.
func (p *UserProfile) Validate() error {
	name := strings.TrimSpace(p.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return fmt.Errorf("profile name must be 2-50 characters, got %d", n)
	}
	if err := checkmail.ValidateFormat(p.Email); err != nil {
		return fmt.Errorf("invalid email %q: %w", p.Email, err)
	}
	if n := utf8.RuneCountInString(p.Bio); n > 200 {
		return fmt.Errorf("profile bio must be at most 200 characters, got %d", n)
	}
	if p.AvatarURL != "" {
		u, err := url.Parse(p.AvatarURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid avatar URL %q", p.AvatarURL)
		}
	}
	return nil
}

// DefaultProfile returns the profile seeded into a fresh store.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:  "User",
		Email: "user@example.com",
		Bio:   "Finance enthusiast managing my budget with Smart Spend.",
	}
}
