package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/config"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/client/services"
	"github.com/dmitrijs2005/accessdoc/internal/client/session"
	"github.com/dmitrijs2005/accessdoc/internal/client/settings"
	"github.com/dmitrijs2005/accessdoc/internal/client/speech"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// voiceReader is the part of speech.VoiceReader the shell uses.
type voiceReader interface {
	Supported() bool
	Reading() bool
	Toggle(ctx context.Context, text string, s models.ReaderSettings) (bool, error)
	Test(ctx context.Context, s models.ReaderSettings) error
	Stop()
	Events() <-chan speech.Event
}

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	authService     services.AuthService
	settingsService services.SettingsService
	documentService services.DocumentService
	adminService    services.AdminService

	voice voiceReader
	panel *settings.Panel

	in  *bufio.Reader
	out io.Writer
	now func() time.Time

	// mu guards the fields the status watcher touches.
	mu            sync.Mutex
	Mode          Mode
	quotaExceeded bool

	session *models.Session
	doc     models.DocumentState
	reader  models.ReaderSettings
	text    models.TextSettings
	users   []models.User
	notice  notice
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, log,
		services.NewAuthService(apiClient, session.NewStore(db), log),
		services.NewSettingsService(apiClient, log),
		services.NewDocumentService(apiClient, log),
		services.NewAdminService(apiClient, log),
		speech.NewVoiceReader(speech.NewEspeakEngine(c.SpeechCommand)),
	)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, as services.AuthService, ss services.SettingsService,
	ds services.DocumentService, ad services.AdminService, vr voiceReader) *App {
	a := &App{
		config:          c,
		log:             log,
		authService:     as,
		settingsService: ss,
		documentService: ds,
		adminService:    ad,
		voice:           vr,
		in:              bufio.NewReader(os.Stdin),
		out:             os.Stdout,
		now:             time.Now,
		reader:          models.DefaultReaderSettings(),
		text:            models.DefaultTextSettings(),
	}
	a.panel = settings.New(settings.Callbacks{
		OnReaderChange: a.applyReader,
		OnTextChange:   a.applyText,
		OnSave:         a.saveSettings,
		StopSpeech:     a.voice.Stop,
	})
	return a
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run restores any stored session and then serves commands from stdin
// until EOF, "exit" or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Bienvenido a accessdoc (escribe 'help' para ver los comandos)")
	a.Bootstrap(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.StatusCheckInterval)
	go a.watchSpeech(ctx)

	runREPL(ctx, a, a.getStatus, a.in)
}

func (a *App) Close() {
	a.voice.Stop()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Valid()
}

func (a *App) isAdmin() bool {
	return a.isLoggedIn() && a.session.IsAdmin
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		s = a.session.Username + " "
		if a.session.IsAdmin {
			s += "admin "
		}
	}
	if m := a.mode(); m != "" {
		s += string(m)
	}
	if a.quota() {
		s += " sin-IA"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher polls /api-status every interval. It flips the
// mode between online and offline and latches the quota flag once the
// backend reports the AI quota as exhausted.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkStatus(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkStatus(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	st, err := a.documentService.Status(ctx)
	cancel()

	if err != nil {
		if a.mode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	if a.mode() != ModeOnline {
		a.setMode(ModeOnline)
	}
	if st.LikelyQuotaExceeded {
		a.setQuota(true)
	}
}

func (a *App) quota() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quotaExceeded
}

func (a *App) setQuota(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if v && !a.quotaExceeded {
		a.log.Warn(context.Background(), "ai quota exceeded, verification disabled")
	}
	a.quotaExceeded = v
}
