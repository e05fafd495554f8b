package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL+"/", 0, logging.Discard())
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.org", 0, logging.Discard())
	require.Error(t, err)
	_, err = NewHTTPClient("://nope", 0, logging.Discard())
	require.Error(t, err)
}

func TestLogin_FormEncoded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get(RequestIDHeader))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "ana", r.PostForm.Get("username"))
		require.Equal(t, "secreto", r.PostForm.Get("password"))
		_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer"}`)
	})

	tok, err := c.Login(context.Background(), "ana", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

func TestLogin_BadCredentials_DetailSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Usuario o contraseña incorrectos"}`)
	})

	_, err := c.Login(context.Background(), "ana", "bad")
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Usuario o contraseña incorrectos", apiErr.Error())
}

func TestRegister_ValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "ana", in["username"])

		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["body","password"],"msg":"too short","type":"value_error.any_str.min_length","ctx":{"limit_value":6}}]}`)
	})

	err := c.Register(context.Background(), "ana", "abc")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 1)
	f := vErr.Fields[0]
	assert.True(t, f.HasLoc("password"))
	assert.False(t, f.HasLoc("username"))
	n, ok := f.Limit()
	assert.True(t, ok)
	assert.Equal(t, 6, n)
}

func TestMe_BearerHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"id":3,"username":"ana","is_admin":0}`)
	})

	me, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 3, me.ID)
	assert.False(t, bool(me.IsAdmin))
}

func TestSettings_RoundTrip(t *testing.T) {
	var stored []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/settings", r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			b, _ := io.ReadAll(r.Body)
			stored = b
			_, _ = w.Write(b)
		case http.MethodGet:
			_, _ = w.Write(stored)
		}
	})
	ctx := context.Background()

	p := models.NewSettingsPayload(models.ReaderSettings{Rate: 2, Pitch: 1, Volume: 0.5}, models.DefaultTextSettings())
	require.NoError(t, c.PutSettings(ctx, "tok", p))
	assert.Contains(t, string(stored), `"rate":"2"`)

	got, err := c.GetSettings(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestUpload_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		require.Equal(t, "PNGDATA", string(b))
		require.Equal(t, "scan.png", hdr.Filename)
		require.Equal(t, "image/png", hdr.Header.Get("Content-Type"))

		_, _ = io.WriteString(w, `{"status":"success","type":"image","original_text":"abc","corrected_text":"","gemini_available":true,"warnings":["x"]}`)
	})

	res, err := c.Upload(context.Background(), "scan.png", "image/png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "abc", res.OriginalText)
	require.NotNil(t, res.GeminiAvailable)
	assert.True(t, *res.GeminiAvailable)
	assert.Equal(t, []string{"x"}, res.Warnings)
}

func TestUpload_ServerRejects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Solo se admiten imágenes (PNG/JPG/JPEG)"}`)
	})

	_, err := c.Upload(context.Background(), "a.txt", "text/plain", strings.NewReader("hi"))
	require.Error(t, err)
	assert.Equal(t, "Solo se admiten imágenes (PNG/JPG/JPEG)", err.Error())
}

func TestVerifyText_QuotaMapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"detail":"rate limited"}`)
	})

	_, err := c.VerifyText(context.Background(), "hola")
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestAdminEndpoints(t *testing.T) {
	var deleted string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer adm", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/users":
			_, _ = io.WriteString(w, `[{"id":1,"username":"root","is_admin":1},{"id":5,"username":"bob","is_admin":0}]`)
		case r.Method == http.MethodDelete:
			deleted = r.URL.Path
			_, _ = io.WriteString(w, `{"detail":"ok"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	users, err := c.ListUsers(ctx, "adm")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, bool(users[0].IsAdmin))

	require.NoError(t, c.DeleteUser(ctx, "adm", 5))
	assert.Equal(t, "/admin/users/5", deleted)
}

func TestStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"gemini_available":true,"last_error":null,"error_count":4,"likely_quota_exceeded":true}`)
	})

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.LikelyQuotaExceeded)
	assert.Equal(t, 4, st.ErrorCount)
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, 0, logging.Discard())
	require.NoError(t, err)

	_, err = c.Me(context.Background(), "tok")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", 401, `{"detail":"x"}`, ErrUnauthorized},
		{"forbidden", 403, ``, ErrUnauthorized},
		{"too many", 429, ``, ErrQuotaExceeded},
		{"quota in detail", 500, `{"detail":"Quota exceeded"}`, ErrQuotaExceeded},
		{"bad gateway", 502, `<html>`, ErrUnavailable},
		{"plain 404", 404, `{"detail":"No se encontraron ajustes para este usuario"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapStatus(tt.status, []byte(tt.body))
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
				return
			}
			for _, s := range []error{ErrUnauthorized, ErrQuotaExceeded, ErrUnavailable} {
				require.False(t, errors.Is(err, s))
			}
		})
	}
}

func TestMapStatus_422WithStringDetail(t *testing.T) {
	err := mapStatus(422, []byte(`{"detail":"bad input"}`))
	var vErr *ValidationError
	require.False(t, errors.As(err, &vErr))
	assert.Equal(t, "bad input", err.Error())
}
