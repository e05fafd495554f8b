package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/config"
	"github.com/dmitrijs2005/accessdoc/internal/client/fakeapi"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/client/services"
	"github.com/dmitrijs2005/accessdoc/internal/client/session"
	"github.com/dmitrijs2005/accessdoc/internal/client/speech"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeVoice struct {
	mu        sync.Mutex
	supported bool
	reading   bool
	stops     int
	spoken    []string
	tested    []models.ReaderSettings
	events    chan speech.Event
}

func newFakeVoice() *fakeVoice {
	return &fakeVoice{supported: true, events: make(chan speech.Event, 1)}
}

func (f *fakeVoice) Supported() bool { return f.supported }

func (f *fakeVoice) Reading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reading
}

func (f *fakeVoice) Toggle(_ context.Context, text string, _ models.ReaderSettings) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reading {
		f.reading = false
		return false, nil
	}
	f.spoken = append(f.spoken, text)
	f.reading = true
	return true, nil
}

func (f *fakeVoice) Test(_ context.Context, s models.ReaderSettings) error {
	if !f.supported {
		return speech.ErrUnsupported
	}
	f.tested = append(f.tested, s)
	return nil
}

func (f *fakeVoice) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.reading = false
}

func (f *fakeVoice) Events() <-chan speech.Event { return f.events }

type testEnv struct {
	app   *App
	api   *fakeapi.Server
	voice *fakeVoice
	out   *bytes.Buffer
	lines *[]string
	url   string
}

// newTestEnv wires a real App against the fake backend over HTTP, with a
// throwaway SQLite store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	api := fakeapi.New()
	srv := api.Start()
	t.Cleanup(srv.Close)

	ctx := context.Background()
	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "accessdoc.db"))
	require.NoError(t, err)

	log := logging.Discard()
	c, err := client.NewHTTPClient(srv.URL, 0, log)
	require.NoError(t, err)

	voice := newFakeVoice()
	a := newApp(&config.Config{APIBaseURL: srv.URL}, log,
		services.NewAuthService(c, session.NewStore(db), log),
		services.NewSettingsService(c, log),
		services.NewDocumentService(c, log),
		services.NewAdminService(c, log),
		voice,
	)
	a.db = db
	t.Cleanup(a.Close)

	out := &bytes.Buffer{}
	a.out = out
	a.in = bufio.NewReader(strings.NewReader(""))

	return &testEnv{app: a, api: api, voice: voice, out: out, lines: silence(t), url: srv.URL}
}

func stubInputs(t *testing.T, username, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func stubConfirm(t *testing.T, answer bool) *[]string {
	t.Helper()
	var asked []string
	orig := confirm
	confirm = func(_ *bufio.Reader, _ io.Writer, label string) (bool, error) {
		asked = append(asked, label)
		return answer, nil
	}
	t.Cleanup(func() { confirm = orig })
	return &asked
}

func (e *testEnv) login(t *testing.T, username, password string) {
	t.Helper()
	stubInputs(t, username, password)
	require.NoError(t, e.app.Login(context.Background()))
}
