package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultDisplayName = "Kanso member"

type UserProfile struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Avatar           string   `json:"avatar,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	JoinedAt         string   `json:"joinedAt"`
	CustomCategories []string `json:"customCategories,omitempty"`
}

type Preferences struct {
	ThemeIndex int  `json:"themeIndex"`
	LightMode  bool `json:"lightMode"`
}

func NewUserProfile(name, email string, now time.Time) (*UserProfile, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return nil, ErrProfileNameEmpty
	}
	return &UserProfile{
		ID:       uuid.NewString(),
		Name:     clean,
		Email:    strings.TrimSpace(email),
		JoinedAt: now.UTC().Format(time.RFC3339),
	}, nil
}

// Categories returns the default habit categories followed by the profile's
// custom ones, without duplicates.
func (u *UserProfile) Categories() []string {
	seen := make(map[string]bool, len(DefaultCategories))
	out := make([]string, 0, len(DefaultCategories))
	add := func(c string) {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}
	for _, c := range DefaultCategories {
		add(c)
	}
	if u != nil {
		for _, c := range u.CustomCategories {
			add(c)
		}
	}
	return out
}

// DisplayName falls back to a generic name when nobody is logged in.
func (u *UserProfile) DisplayName() string {
	if u == nil || strings.TrimSpace(u.Name) == "" {
		return DefaultDisplayName
	}
	return u.Name
}
