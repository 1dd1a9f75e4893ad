// Package adapter exposes the user directory to other modules through
// their own narrow interfaces.
package adapter

import (
	"context"

	oppsvc "mobiauto_backend/internal/opportunities/service"
	"mobiauto_backend/internal/users/repository"

	"github.com/google/uuid"
)

// Directory adapts the users repository to the view the opportunity
// engine needs.
type Directory struct {
	repo repository.Reader
}

// NewDirectory creates a directory adapter.
func NewDirectory(repo repository.Reader) *Directory {
	return &Directory{repo: repo}
}

var _ oppsvc.Directory = (*Directory)(nil)

// UserByID returns a single user by ID.
func (d *Directory) UserByID(ctx context.Context, id uuid.UUID) (oppsvc.User, error) {
	user, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return oppsvc.User{}, err
	}
	return toDirectoryUser(user), nil
}

// ListAssistants returns every assistant, oldest account first.
func (d *Directory) ListAssistants(ctx context.Context) ([]oppsvc.User, error) {
	users, err := d.repo.ListByRole(ctx, repository.RoleAssistant)
	if err != nil {
		return nil, err
	}
	out := make([]oppsvc.User, 0, len(users))
	for _, u := range users {
		out = append(out, toDirectoryUser(u))
	}
	return out, nil
}

func toDirectoryUser(u repository.User) oppsvc.User {
	return oppsvc.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
