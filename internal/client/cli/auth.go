package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
)

const (
	confirmLogout = "¿Estás seguro de que quieres cerrar sesión?"
	msgExpired    = "Tu sesión ha caducado, inicia sesión de nuevo"
)

// Bootstrap restores a stored session. A token the server rejects, or one
// whose settings cannot be fetched, is dropped and the shell stays logged
// out. Nothing is retried.
func (a *App) Bootstrap(ctx context.Context) {
	sess, err := a.authService.Restore(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		a.log.Info(ctx, "stored session discarded", "error", err)
		a.notify(msgExpired)
		return
	}
	if sess == nil {
		return
	}

	a.session = sess
	a.setMode(ModeOnline)
	if !sess.IsAdmin {
		if err := a.fetchSettings(ctx); err != nil {
			return
		}
	}
	printlnFn(fmt.Sprintf("Sesión restaurada: %s", sess.Username))
}

// Register prompts for credentials, creates the account and logs in with
// the same credentials.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.in, "Usuario", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, userName, string(password)); err != nil {
		return err
	}
	printlnFn("Usuario registrado")
	return a.loginWith(ctx, userName, string(password))
}

// Login prompts for credentials, offering the last username as default.
func (a *App) Login(ctx context.Context) error {
	prompt := "Usuario"
	last := a.authService.LastUsername(ctx)
	if last != "" {
		prompt = fmt.Sprintf("Usuario [%s]", last)
	}
	userName, err := getSimpleText(a.in, prompt, a.out)
	if err != nil {
		return err
	}
	if userName == "" {
		userName = last
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	return a.loginWith(ctx, userName, string(password))
}

// loginWith authenticates and, for regular users, loads their settings.
// A failed login leaves the current state untouched.
func (a *App) loginWith(ctx context.Context, userName, password string) error {
	sess, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.session = sess
	a.setMode(ModeOnline)
	if !sess.IsAdmin {
		if err := a.fetchSettings(ctx); err != nil {
			return err
		}
	}
	printlnFn(fmt.Sprintf("Bienvenido, %s", sess.Username))
	return nil
}

// fetchSettings loads the user's settings. Any failure ends the session.
func (a *App) fetchSettings(ctx context.Context) error {
	r, t, err := a.settingsService.Fetch(ctx, a.session)
	if err != nil {
		a.log.Warn(ctx, "settings fetch failed, logging out", "error", err)
		a.endSession(ctx)
		return fmt.Errorf("%s: %w", msgExpired, err)
	}
	a.reader, a.text = r, t
	a.panel.Load(r, t)
	return nil
}

// Logout asks for confirmation, then forgets the session and resets all
// local state.
func (a *App) Logout(ctx context.Context) error {
	ok, err := confirm(a.in, a.out, confirmLogout)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	a.endSession(ctx)
	printlnFn("Sesión cerrada")
	return nil
}

func (a *App) endSession(ctx context.Context) {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Error(ctx, "clear stored session", "error", err)
	}
	a.voice.Stop()
	a.session = nil
	a.users = nil
	a.reader = models.DefaultReaderSettings()
	a.text = models.DefaultTextSettings()
	a.panel.Load(a.reader, a.text)
	a.doc = models.DocumentState{}
}
