package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
)

// fakeClient implements client.Client with canned results and call capture.
type fakeClient struct {
	loginToken string
	loginErr   error
	loginCalls int

	registerErr   error
	registerCalls int

	me      *models.Me
	meErr   error
	meCalls int

	settings    *models.SettingsPayload
	settingsErr error
	putErr      error
	put         *models.SettingsPayload

	upload     *models.UploadResult
	uploadErr  error
	uploadBody string

	verify     *models.VerifyResult
	verifyErr  error
	verifyText string

	users      []models.User
	usersErr   error
	listCalls  int
	deleteErr  error
	deletedIDs []int

	status    *models.APIStatus
	statusErr error
}

func (f *fakeClient) Login(_ context.Context, _, _ string) (string, error) {
	f.loginCalls++
	return f.loginToken, f.loginErr
}

func (f *fakeClient) Register(_ context.Context, _, _ string) error {
	f.registerCalls++
	return f.registerErr
}

func (f *fakeClient) Me(_ context.Context, _ string) (*models.Me, error) {
	f.meCalls++
	return f.me, f.meErr
}

func (f *fakeClient) GetSettings(_ context.Context, _ string) (*models.SettingsPayload, error) {
	return f.settings, f.settingsErr
}

func (f *fakeClient) PutSettings(_ context.Context, _ string, p models.SettingsPayload) error {
	f.put = &p
	return f.putErr
}

func (f *fakeClient) Upload(_ context.Context, _, _ string, r io.Reader) (*models.UploadResult, error) {
	b, _ := io.ReadAll(r)
	f.uploadBody = string(b)
	return f.upload, f.uploadErr
}

func (f *fakeClient) VerifyText(_ context.Context, text string) (*models.VerifyResult, error) {
	f.verifyText = text
	return f.verify, f.verifyErr
}

func (f *fakeClient) ListUsers(_ context.Context, _ string) ([]models.User, error) {
	f.listCalls++
	return f.users, f.usersErr
}

func (f *fakeClient) DeleteUser(_ context.Context, _ string, id int) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return f.deleteErr
}

func (f *fakeClient) Status(_ context.Context) (*models.APIStatus, error) {
	return f.status, f.statusErr
}

// memStore is an in-memory SessionStore.
type memStore struct {
	sess     *models.Session
	username string
	cleared  int
}

func (m *memStore) Load(context.Context) (*models.Session, error) {
	if m.sess == nil {
		return nil, nil
	}
	c := *m.sess
	return &c, nil
}

func (m *memStore) Save(_ context.Context, s *models.Session) error {
	c := *s
	m.sess = &c
	m.username = s.Username
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.sess = nil
	m.cleared++
	return nil
}

func (m *memStore) LastUsername(context.Context) (string, error) {
	return m.username, nil
}
