package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-call id so client and server logs can be
// matched.
const RequestIDHeader = "X-Request-ID"

// HTTPClient talks to the backend over plain REST/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient returns a client for baseURL. A zero timeout leaves the
// platform default (no deadline) in place.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", u.Scheme)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

func withBearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// do sends req and decodes a 2xx JSON body into out (when out is non-nil).
func (c *HTTPClient) do(req *http.Request, out any) error {
	started := time.Now()
	log := c.log.With("method", req.Method, "path", req.URL.Path, "request_id", req.Header.Get(RequestIDHeader))

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(req.Context(), "request failed", "error", err)
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	log.Debug(req.Context(), "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		withBearer(req, token)
	}
	return c.do(req, out)
}

// Login posts form-encoded credentials and returns the access token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login: empty access token")
	}
	return out.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	in := map[string]string{"username": username, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", "", in, nil)
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.Me, error) {
	var me models.Me
	if err := c.doJSON(ctx, http.MethodGet, "/me", token, nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *HTTPClient) GetSettings(ctx context.Context, token string) (*models.SettingsPayload, error) {
	var p models.SettingsPayload
	if err := c.doJSON(ctx, http.MethodGet, "/me/settings", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) PutSettings(ctx context.Context, token string, p models.SettingsPayload) error {
	return c.doJSON(ctx, http.MethodPut, "/me/settings", token, p, nil)
}

// Upload streams r as the "file" part of a multipart POST. The endpoint
// takes no bearer token.
func (c *HTTPClient) Upload(ctx context.Context, name, contentType string, r io.Reader) (*models.UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", pr)
	if err != nil {
		_ = pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out models.UploadResult
	if err := c.do(req, &out); err != nil {
		_ = pr.Close()
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyText(ctx context.Context, text string) (*models.VerifyResult, error) {
	var out models.VerifyResult
	in := map[string]string{"text": text}
	if err := c.doJSON(ctx, http.MethodPost, "/verify-text", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, token string, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/users/"+strconv.Itoa(id), token, nil, nil)
}

func (c *HTTPClient) Status(ctx context.Context) (*models.APIStatus, error) {
	var out models.APIStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api-status", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
