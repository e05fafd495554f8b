package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
)

// Client is the contract of the document-processing REST API. Calls that
// need authentication take the bearer token explicitly.
type Client interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
	Me(ctx context.Context, token string) (*models.Me, error)
	GetSettings(ctx context.Context, token string) (*models.SettingsPayload, error)
	PutSettings(ctx context.Context, token string, p models.SettingsPayload) error
	Upload(ctx context.Context, name, contentType string, r io.Reader) (*models.UploadResult, error)
	VerifyText(ctx context.Context, text string) (*models.VerifyResult, error)
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	DeleteUser(ctx context.Context, token string, id int) error
	Status(ctx context.Context) (*models.APIStatus, error)
}
