// Package fakeapi is an in-memory stand-in for the document API, used by
// tests that exercise the client end to end over HTTP.
package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type account struct {
	id       int
	username string
	password string
	admin    bool
}

// Server holds the fake backend state. Exported fields configure canned
// responses and may be changed between requests under the lock taken by
// Set.
type Server struct {
	mu       sync.Mutex
	nextID   int
	accounts map[string]*account
	tokens   map[string]*account
	settings map[int]models.SettingsPayload
	calls    map[string]int

	UploadResult models.UploadResult
	UploadStatus int
	VerifyResult models.VerifyResult
	VerifyStatus int
	APIStatus    models.APIStatus
	// SettingsStatus, when set, is returned by GET /me/settings.
	SettingsStatus int

	router chi.Router
}

func New() *Server {
	s := &Server{
		nextID:   1,
		accounts: map[string]*account{},
		tokens:   map[string]*account{},
		settings: map[int]models.SettingsPayload{},
		calls:    map[string]int{},
	}
	s.router = s.routes()
	return s
}

// Start serves s on a local listener until the returned server is closed.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.router)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Set runs fn under the server lock.
func (s *Server) Set(fn func(s *Server)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// AddUser creates an account and returns its id.
func (s *Server) AddUser(username, password string, admin bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(username, password, admin)
}

func (s *Server) addLocked(username, password string, admin bool) int {
	a := &account{id: s.nextID, username: username, password: password, admin: admin}
	s.nextID++
	s.accounts[username] = a
	return a.id
}

// PutSettings stores p for the user, as if saved earlier.
func (s *Server) PutSettings(userID int, p models.SettingsPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[userID] = p
}

func (s *Server) Settings(userID int) (models.SettingsPayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.settings[userID]
	return p, ok
}

// Calls returns how often the route "METHOD /pattern" was hit.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

func (s *Server) HasUser(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[username]
	return ok
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.count)

	r.Post("/auth/login", s.login)
	r.Post("/auth/register", s.register)
	r.Post("/upload", s.upload)
	r.Post("/verify-text", s.verify)
	r.Get("/api-status", s.status)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/me", s.me)
		r.Get("/me/settings", s.getSettings)
		r.Put("/me/settings", s.putSettings)
		r.With(s.adminOnly).Get("/admin/users", s.listUsers)
		r.With(s.adminOnly).Delete("/admin/users/{id}", s.deleteUser)
	})
	return r
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		s.mu.Lock()
		s.calls[r.Method+" "+pattern]++
		s.mu.Unlock()
	})
}

type ctxKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		a := s.tokens[tok]
		s.mu.Unlock()
		if !ok || a == nil {
			writeDetail(w, http.StatusUnauthorized, "No se pudieron validar las credenciales")
			return
		}
		next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), a)))
	})
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !accountFrom(r.Context()).admin {
			writeDetail(w, http.StatusForbidden, "Acceso denegado")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	a := s.accounts[r.PostForm.Get("username")]
	if a == nil || a.password != r.PostForm.Get("password") {
		s.mu.Unlock()
		writeDetail(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		return
	}
	tok := "tok-" + strconv.Itoa(a.id) + "-" + middleware.GetReqID(r.Context())
	s.tokens[tok] = a
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok, "token_type": "bearer"})
}

type fieldError struct {
	Loc  []string       `json:"loc"`
	Msg  string         `json:"msg"`
	Type string         `json:"type"`
	Ctx  map[string]int `json:"ctx,omitempty"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []fieldError
	if n := len([]rune(in.Username)); n < 3 {
		fields = append(fields, fieldError{Loc: []string{"body", "username"}, Msg: "ensure this value has at least 3 characters", Type: "value_error.any_str.min_length", Ctx: map[string]int{"limit_value": 3}})
	} else if n > 50 {
		fields = append(fields, fieldError{Loc: []string{"body", "username"}, Msg: "ensure this value has at most 50 characters", Type: "value_error.any_str.max_length", Ctx: map[string]int{"limit_value": 50}})
	}
	if len([]rune(in.Password)) < 6 {
		fields = append(fields, fieldError{Loc: []string{"body", "password"}, Msg: "ensure this value has at least 6 characters", Type: "value_error.any_str.min_length", Ctx: map[string]int{"limit_value": 6}})
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": fields})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[in.Username]; ok {
		writeDetail(w, http.StatusBadRequest, "El nombre de usuario ya está registrado")
		return
	}
	id := s.addLocked(in.Username, in.Password, false)
	s.settings[id] = models.NewSettingsPayload(models.DefaultReaderSettings(), models.DefaultTextSettings())
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "username": in.Username, "is_admin": 0})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	a := accountFrom(r.Context())
	writeJSON(w, http.StatusOK, userJSON(a))
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	a := accountFrom(r.Context())
	s.mu.Lock()
	status := s.SettingsStatus
	p, ok := s.settings[a.id]
	s.mu.Unlock()

	if status != 0 {
		writeDetail(w, status, "Error al obtener ajustes")
		return
	}
	if !ok {
		writeDetail(w, http.StatusNotFound, "No se encontraron ajustes para este usuario")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	var p models.SettingsPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	a := accountFrom(r.Context())
	s.mu.Lock()
	s.settings[a.id] = p
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	f, _, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "No se recibió ningún archivo")
		return
	}
	defer f.Close()
	_, _ = io.Copy(io.Discard, f)

	s.mu.Lock()
	status, res := s.UploadStatus, s.UploadResult
	s.mu.Unlock()
	if status != 0 && status != http.StatusOK {
		writeDetail(w, status, "Error al procesar el archivo")
		return
	}
	if res.Status == "" {
		res.Status = "success"
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	status, res := s.VerifyStatus, s.VerifyResult
	s.mu.Unlock()
	if status != 0 && status != http.StatusOK {
		writeDetail(w, status, "Quota exceeded")
		return
	}
	res.OriginalText = in.Text
	if res.CorrectedText == "" {
		res.CorrectedText = in.Text
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.APIStatus
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]map[string]any, 0, len(s.accounts))
	for id := 1; id < s.nextID; id++ {
		for _, a := range s.accounts {
			if a.id == id {
				out = append(out, userJSON(a))
			}
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, a := range s.accounts {
		if a.id == id {
			delete(s.accounts, name)
			for tok, ta := range s.tokens {
				if ta == a {
					delete(s.tokens, tok)
				}
			}
			writeJSON(w, http.StatusOK, map[string]string{"detail": "Usuario eliminado"})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Usuario no encontrado")
}

func userJSON(a *account) map[string]any {
	admin := 0
	if a.admin {
		admin = 1
	}
	return map[string]any{"id": a.id, "username": a.username, "is_admin": admin}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
