package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
)

var (
	ErrNotAdmin   = errors.New("no tienes permisos de administrador")
	ErrDeleteSelf = errors.New("no puedes eliminar tu propio usuario")
)

// AdminService lists and deletes accounts. Every call re-checks the admin
// flag through /me.
type AdminService interface {
	Users(ctx context.Context, s *models.Session) ([]models.User, error)
	Delete(ctx context.Context, s *models.Session, id int) error
}

type adminService struct {
	client client.Client
	log    logging.Logger
}

func NewAdminService(c client.Client, log logging.Logger) AdminService {
	return &adminService{client: c, log: log}
}

func (a *adminService) requireAdmin(ctx context.Context, s *models.Session) (*models.Me, error) {
	if !s.Valid() {
		return nil, client.ErrUnauthorized
	}
	me, err := a.client.Me(ctx, s.Token)
	if err != nil {
		return nil, fmt.Errorf("check admin: %w", err)
	}
	if !me.IsAdmin {
		return nil, ErrNotAdmin
	}
	return me, nil
}

func (a *adminService) Users(ctx context.Context, s *models.Session) ([]models.User, error) {
	if _, err := a.requireAdmin(ctx, s); err != nil {
		return nil, err
	}
	users, err := a.client.ListUsers(ctx, s.Token)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete removes the account with the given id. The caller drops it from
// its own list; nothing is re-fetched here.
func (a *adminService) Delete(ctx context.Context, s *models.Session, id int) error {
	if !s.Valid() {
		return client.ErrUnauthorized
	}
	if s.UserID != 0 && s.UserID == id {
		return ErrDeleteSelf
	}
	if err := a.client.DeleteUser(ctx, s.Token, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	a.log.Info(ctx, "user deleted", "id", id)
	return nil
}

// WithoutUser returns users minus the entry with the given id.
func WithoutUser(users []models.User, id int) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}
