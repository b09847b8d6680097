package services

import (
	"errors"

	"porcelain/internal/domain"
	"porcelain/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService guards the admin area. With Required false every visitor is
// treated as an admin.
type AuthService struct {
	Users    *repos.UserRepo
	Required bool
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// IsAdmin reports whether the session may use the admin area.
func (s *AuthService) IsAdmin(sid string) bool {
	if !s.Required {
		return true
	}
	if sid == "" {
		return false
	}
	u, err := s.CurrentUser(sid)
	return err == nil && u.IsAdmin()
}
