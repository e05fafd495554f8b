package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
)

const msgSaveFailed = "Error al guardar ajustes"

// SettingsService loads and stores the per-user display and reader
// settings.
type SettingsService interface {
	Fetch(ctx context.Context, s *models.Session) (models.ReaderSettings, models.TextSettings, error)
	Save(ctx context.Context, s *models.Session, r models.ReaderSettings, t models.TextSettings) error
}

type settingsService struct {
	client client.Client
	log    logging.Logger
}

func NewSettingsService(c client.Client, log logging.Logger) SettingsService {
	return &settingsService{client: c, log: log}
}

// Fetch returns the stored settings, clamped into range. The caller treats
// any error as an invalid session.
func (s *settingsService) Fetch(ctx context.Context, sess *models.Session) (models.ReaderSettings, models.TextSettings, error) {
	if !sess.Valid() {
		return models.DefaultReaderSettings(), models.DefaultTextSettings(), client.ErrUnauthorized
	}
	p, err := s.client.GetSettings(ctx, sess.Token)
	if err != nil {
		return models.DefaultReaderSettings(), models.DefaultTextSettings(), fmt.Errorf("fetch settings: %w", err)
	}
	r, t := p.Settings()
	return r, t, nil
}

// Save stores both settings groups in one request. Failures carry the
// generic save message.
func (s *settingsService) Save(ctx context.Context, sess *models.Session, r models.ReaderSettings, t models.TextSettings) error {
	if !sess.Valid() {
		return &MessageError{Msg: msgSaveFailed, Err: client.ErrUnauthorized}
	}
	p := models.NewSettingsPayload(r.Clamped(), t.Clamped())
	if err := s.client.PutSettings(ctx, sess.Token, p); err != nil {
		s.log.Warn(ctx, "save settings", "error", err)
		return &MessageError{Msg: msgSaveFailed, Err: err}
	}
	return nil
}
