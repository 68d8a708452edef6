package services

import (
	"context"
	"strings"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

// ProfileService handles the local display-name login and user preferences.
type ProfileService struct {
	state *StateService
}

func NewProfileService(state *StateService) *ProfileService {
	return &ProfileService{state: state}
}

type UpdateProfileInput struct {
	Name   string
	Email  string
	Bio    string
	Avatar string
}

func (s *ProfileService) Profile() (*domain.UserProfile, error) {
	p := s.state.View().Profile
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

// Login stores a profile for name. Logging in again keeps the existing
// profile and only renames it.
func (s *ProfileService) Login(ctx context.Context, name, email string) (*domain.UserProfile, error) {
	fresh, err := domain.NewUserProfile(name, email, s.state.Now())
	if err != nil {
		return nil, err
	}

	var out domain.UserProfile
	err = s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		if st.Profile == nil {
			st.Profile = fresh
		} else {
			st.Profile.Name = fresh.Name
			if fresh.Email != "" {
				st.Profile.Email = fresh.Email
			}
		}
		out = *st.Profile
		return domain.ChangeProfile, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProfileService) Update(ctx context.Context, in UpdateProfileInput) (*domain.UserProfile, error) {
	var out domain.UserProfile
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		if st.Profile == nil {
			return domain.ChangeNone, domain.ErrProfileNotFound
		}
		name := strings.TrimSpace(mergeString(in.Name, st.Profile.Name))
		if name == "" {
			return domain.ChangeNone, domain.ErrProfileNameEmpty
		}
		st.Profile.Name = name
		st.Profile.Email = mergeString(strings.TrimSpace(in.Email), st.Profile.Email)
		st.Profile.Bio = mergeString(in.Bio, st.Profile.Bio)
		st.Profile.Avatar = mergeString(in.Avatar, st.Profile.Avatar)
		out = *st.Profile
		return domain.ChangeProfile, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout forgets the profile. Tracked data is kept.
func (s *ProfileService) Logout(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		if st.Profile == nil {
			return domain.ChangeNone, nil
		}
		st.Profile = nil
		return domain.ChangeProfile, nil
	})
}

func (s *ProfileService) Categories() []string {
	return s.state.View().Profile.Categories()
}

// AddCategory registers a custom habit category on the profile.
func (s *ProfileService) AddCategory(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrCategoryEmpty
	}

	var out []string
	err := s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		if st.Profile == nil {
			return domain.ChangeNone, domain.ErrProfileNotFound
		}
		for _, c := range st.Profile.Categories() {
			if strings.EqualFold(c, name) {
				out = st.Profile.Categories()
				return domain.ChangeNone, nil
			}
		}
		st.Profile.CustomCategories = append(st.Profile.CustomCategories, name)
		out = st.Profile.Categories()
		return domain.ChangeProfile, nil
	})
	return out, err
}

func (s *ProfileService) Preferences() domain.Preferences {
	return s.state.View().Preferences
}

func (s *ProfileService) SetPreferences(ctx context.Context, prefs domain.Preferences) error {
	if prefs.ThemeIndex < 0 {
		return domain.ErrInvalidTheme
	}
	return s.state.Update(ctx, func(st *domain.AppState) (domain.Change, error) {
		st.Preferences = prefs
		return domain.ChangePreferences, nil
	})
}
