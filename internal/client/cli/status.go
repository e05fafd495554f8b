package cli

import (
	"context"
	"fmt"
)

// Status prints the session, the connection mode and what the backend
// reports about its AI service.
func (a *App) Status(ctx context.Context) error {
	if a.isLoggedIn() {
		line := fmt.Sprintf("Sesión: %s", a.session.Username)
		if !a.session.ExpiresAt.IsZero() {
			line += fmt.Sprintf(" (caduca %s)", a.session.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		printlnFn(line)
	}

	st, err := a.documentService.Status(ctx)
	if err != nil {
		a.setMode(ModeOffline)
		printlnFn(fmt.Sprintf("Modo: %s", a.mode()))
		return err
	}
	a.setMode(ModeOnline)
	if st.LikelyQuotaExceeded {
		a.setQuota(true)
	}

	printlnFn(fmt.Sprintf("Modo: %s", a.mode()))
	printlnFn(fmt.Sprintf("IA disponible: %t, errores: %d", st.GeminiAvailable, st.ErrorCount))
	if a.quota() {
		printlnFn("Cuota de IA agotada: la verificación automática está desactivada")
	}
	return nil
}
