// Package account handles profile edits: name/address updates and password
// changes, each refreshing the session with what the backend persisted.
package account

import (
	"context"
	"errors"
	"strings"

	"github.com/Goga-Rid/pitza/internal/backend"
)

var ErrPasswordRequired = errors.New("both old and new passwords are required")

type API interface {
	UpdateUser(ctx context.Context, upd backend.UserUpdate) (*backend.User, error)
	CurrentUser(ctx context.Context) (*backend.User, error)
}

// Session is the write path back into the auth store.
type Session interface {
	SetUser(user *backend.User)
}

type Service struct {
	api     API
	session Session
}

func NewService(api API, session Session) *Service {
	return &Service{api: api, session: session}
}

// UpdateProfile saves name and address, then refetches the user so the
// session reflects persisted state rather than the request payload.
func (s *Service) UpdateProfile(ctx context.Context, name, address string) (*backend.User, error) {
	_, err := s.api.UpdateUser(ctx, backend.UserUpdate{
		Name:    strings.TrimSpace(name),
		Address: strings.TrimSpace(address),
	})
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx)
}

func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrPasswordRequired
	}
	_, err := s.api.UpdateUser(ctx, backend.UserUpdate{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	return err
}

func (s *Service) refresh(ctx context.Context) (*backend.User, error) {
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	s.session.SetUser(user)
	return user, nil
}
