// Package services contains the application services of the accessdoc
// client. They sit between the interactive shell and the REST client,
// translate wire errors into user-facing messages and own the local
// session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/client/session"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
)

// Registration limits enforced by the backend schema.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 6
)

// Default messages shown when the server gives no detail.
const (
	msgInvalidCredentials = "Credenciales inválidas"
	msgRegisterFailed     = "Error al registrar usuario"
)

// ErrSessionExpired is returned by Restore when the stored token's exp
// claim has passed.
var ErrSessionExpired = errors.New("session expired")

// SessionStore persists the single client session.
type SessionStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
	LastUsername(ctx context.Context) (string, error)
}

// AuthService covers login, registration, session restore and logout.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Register(ctx context.Context, username, password string) error
	Restore(ctx context.Context) (*models.Session, error)
	Me(ctx context.Context, s *models.Session) (*models.Me, error)
	Logout(ctx context.Context) error
	LastUsername(ctx context.Context) string
}

type authService struct {
	client client.Client
	store  SessionStore
	log    logging.Logger
	now    func() time.Time
}

func NewAuthService(c client.Client, store SessionStore, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log, now: time.Now}
}

// Login authenticates, persists the token and resolves the admin flag.
// On failure no session state is touched.
func (a *authService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		a.log.Info(ctx, "login rejected", "user", username, "error", err)
		return nil, loginError(err)
	}

	sess := session.FromToken(token)
	if sess.Username == "" {
		sess.Username = username
	}

	if err := a.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	me, err := a.client.Me(ctx, sess.Token)
	if err != nil {
		_ = a.store.Clear(ctx)
		return nil, loginError(err)
	}
	applyMe(sess, me)

	a.log.Info(ctx, "logged in", "user", sess.Username, "admin", sess.IsAdmin)
	return sess, nil
}

func loginError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return &MessageError{Msg: apiErr.Detail, Err: err}
	}
	if errors.Is(err, client.ErrUnavailable) {
		return &MessageError{Msg: "Servidor no disponible", Err: err}
	}
	return &MessageError{Msg: msgInvalidCredentials, Err: err}
}

// Register validates the credentials locally, then creates the account.
// Field problems come back as a bulleted, field-labelled message.
func (a *authService) Register(ctx context.Context, username, password string) error {
	if fields := ValidateCredentials(username, password); len(fields) > 0 {
		return &MessageError{Msg: FormatFieldErrors(fields), Err: &client.ValidationError{Fields: fields}}
	}

	err := a.client.Register(ctx, username, password)
	if err == nil {
		a.log.Info(ctx, "registered", "user", username)
		return nil
	}

	var vErr *client.ValidationError
	if errors.As(err, &vErr) {
		return &MessageError{Msg: FormatFieldErrors(vErr.Fields), Err: err}
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return &MessageError{Msg: apiErr.Detail, Err: err}
	}
	return &MessageError{Msg: msgRegisterFailed, Err: err}
}

// Restore loads the stored token and validates it against /me. A token
// whose exp claim has passed is dropped without asking the server. Any
// failure clears the stored token; (nil, nil) means there was nothing to
// restore.
func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.Valid() {
		return nil, nil
	}

	if sess.Expired(a.now()) {
		a.log.Info(ctx, "stored session expired", "expires_at", sess.ExpiresAt)
		a.clearStore(ctx)
		return nil, fmt.Errorf("restore session: %w", ErrSessionExpired)
	}

	me, err := a.client.Me(ctx, sess.Token)
	if err != nil {
		a.log.Warn(ctx, "stored session rejected", "error", err)
		a.clearStore(ctx)
		return nil, fmt.Errorf("restore session: %w", err)
	}
	applyMe(sess, me)
	return sess, nil
}

func (a *authService) clearStore(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "clear session", "error", err)
	}
}

func (a *authService) Me(ctx context.Context, s *models.Session) (*models.Me, error) {
	if !s.Valid() {
		return nil, client.ErrUnauthorized
	}
	return a.client.Me(ctx, s.Token)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) LastUsername(ctx context.Context) string {
	name, err := a.store.LastUsername(ctx)
	if err != nil {
		return ""
	}
	return name
}

func applyMe(s *models.Session, me *models.Me) {
	s.UserID = me.ID
	s.IsAdmin = bool(me.IsAdmin)
	if me.Username != "" {
		s.Username = me.Username
	}
}

// ValidateCredentials mirrors the backend's registration schema so the
// obvious mistakes never reach the network.
func ValidateCredentials(username, password string) []client.FieldError {
	var out []client.FieldError
	n := utf8.RuneCountInString(strings.TrimSpace(username))
	switch {
	case n < MinUsernameLen:
		out = append(out, lengthError("username", typeMinLength, MinUsernameLen))
	case n > MaxUsernameLen:
		out = append(out, lengthError("username", typeMaxLength, MaxUsernameLen))
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		out = append(out, lengthError("password", typeMinLength, MinPasswordLen))
	}
	return out
}

const (
	typeMinLength = "value_error.any_str.min_length"
	typeMaxLength = "value_error.any_str.max_length"
)

func lengthError(field, kind string, limit int) client.FieldError {
	return client.FieldError{
		Loc:  []any{"body", field},
		Type: kind,
		Msg:  fmt.Sprintf("%s length limit %d", field, limit),
		Ctx:  map[string]any{"limit_value": float64(limit)},
	}
}

func fieldLabel(f client.FieldError) string {
	switch {
	case f.HasLoc("username"):
		return "Usuario"
	case f.HasLoc("password"):
		return "Contraseña"
	default:
		return "Campo"
	}
}

// FormatFieldErrors renders one bullet per field error, one per line.
func FormatFieldErrors(fields []client.FieldError) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		label := fieldLabel(f)
		limit, hasLimit := f.Limit()
		switch {
		case hasLimit && (f.Type == typeMinLength || f.Type == "string_too_short"):
			lines = append(lines, fmt.Sprintf("• %s debe tener al menos %d caracteres", label, limit))
		case hasLimit && (f.Type == typeMaxLength || f.Type == "string_too_long"):
			lines = append(lines, fmt.Sprintf("• %s no debe superar %d caracteres", label, limit))
		default:
			lines = append(lines, fmt.Sprintf("• Error en %s: %s", label, f.Msg))
		}
	}
	return strings.Join(lines, "\n")
}
