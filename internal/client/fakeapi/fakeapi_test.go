package fakeapi

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/accessdoc/internal/client/client"
	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAPI_WithHTTPClient(t *testing.T) {
	s := New()
	adminID := s.AddUser("root", "rootpass", true)
	srv := s.Start()
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL, 0, logging.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	err = c.Register(ctx, "ab", "123")
	var vErr *client.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 2)

	require.NoError(t, c.Register(ctx, "ana", "secreto"))
	assert.True(t, s.HasUser("ana"))

	_, err = c.Login(ctx, "ana", "wrong")
	require.ErrorIs(t, err, client.ErrUnauthorized)

	tok, err := c.Login(ctx, "ana", "secreto")
	require.NoError(t, err)

	me, err := c.Me(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "ana", me.Username)
	assert.False(t, bool(me.IsAdmin))

	defaults, err := c.GetSettings(ctx, tok)
	require.NoError(t, err)
	r, txt := defaults.Settings()
	assert.Equal(t, models.DefaultReaderSettings(), r)
	assert.Equal(t, models.DefaultTextSettings(), txt)

	p := models.NewSettingsPayload(models.ReaderSettings{Rate: 2, Pitch: 1, Volume: 1}, models.DefaultTextSettings())
	require.NoError(t, c.PutSettings(ctx, tok, p))
	got, err := c.GetSettings(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	_, err = c.ListUsers(ctx, tok)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	adminTok, err := c.Login(ctx, "root", "rootpass")
	require.NoError(t, err)
	_, err = c.GetSettings(ctx, adminTok)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	users, err := c.ListUsers(ctx, adminTok)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, adminID, users[0].ID)

	require.NoError(t, c.DeleteUser(ctx, adminTok, users[1].ID))
	assert.False(t, s.HasUser("ana"))
	assert.Equal(t, 1, s.Calls("DELETE /admin/users/{id}"))
	assert.Equal(t, 2, s.Calls("GET /admin/users"))
}
