// Package backendtest runs an in-memory notes backend for tests of code
// built on the backend client.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/cookie"
)

// Server is a fake backend. Accounts are addressed by username; each
// account has exactly one session token.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]*account
	tokens   map[string]string // token -> username
	failures map[string]failure
	calls    map[string]int
	delay    map[string]time.Duration
	binaries backend.Binaries
}

type account struct {
	user     backend.User
	password string
	notes    []backend.Note
	activity []backend.Activity
	picture  []byte
}

type failure struct {
	status  int
	message string
}

// New starts a Server that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		users:    make(map[string]*account),
		tokens:   make(map[string]string),
		failures: make(map[string]failure),
		calls:    make(map[string]int),
		delay:    make(map[string]time.Duration),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// Client returns a backend client pointed at s.
func (s *Server) Client(t testing.TB, opts ...backend.Option) *backend.Client {
	t.Helper()
	c, err := backend.New(s.URL, opts...)
	require.NoError(t, err)
	return c
}

// AddUser registers an account and returns its session token.
func (s *Server) AddUser(u backend.User, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(u, password)
}

// Must be called with the lock held.
func (s *Server) addUser(u backend.User, password string) string {
	if u.ID == "" {
		u.ID = "user-" + u.Username
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	token := "token-" + u.Username
	s.users[u.Username] = &account{user: u, password: password}
	s.tokens[token] = u.Username
	return token
}

// AddNote gives username a note.
func (s *Server) AddNote(username string, n backend.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.users[username]
	n.UserID = a.user.ID
	a.notes = append(a.notes, n)
}

func (s *Server) AddActivity(username string, act backend.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.users[username]
	act.UserID = a.user.ID
	a.activity = append(a.activity, act)
}

func (s *Server) SetBinaries(b backend.Binaries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.binaries = b
}

// Fail makes every request to path answer status with {"error": message}.
func (s *Server) Fail(path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, message: message}
}

// Delay holds every request to path for d before answering.
func (s *Server) Delay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay[path] = d
}

// Calls reports how many requests reached path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// User returns the current state of an account.
func (s *Server) User(username string) (backend.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[username]
	if !ok {
		return backend.User{}, false
	}
	return a.user, true
}

// Picture returns the last uploaded profile picture of username.
func (s *Server) Picture(username string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.users[username]; ok {
		return a.picture
	}
	return nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.track)

	r.Post("/accounts/login", s.login)
	r.Post("/accounts/register", s.register)
	r.Get("/accounts/logout", s.authed(s.logout))
	r.Get("/accounts/me", s.authed(s.me))
	r.Get("/accounts/usernameExists", s.usernameExists)
	r.Get("/accounts/authcode", s.authed(s.authCode))

	r.Get("/notes/list", s.authed(s.listNotes))
	r.Get("/notes/list/{username}", s.publicNotes)
	r.Get("/notes/{id}", s.authed(s.getNote))
	r.Get("/notes/{username}/{slug}", s.publicNote)
	r.Post("/notes/deploy/{id}", s.authed(s.deploy))
	r.Delete("/notes/deploy/{id}", s.authed(s.undeploy))

	r.Get("/profile/{username}", s.publicProfile)
	r.Patch("/profile/description", s.authed(s.description))
	r.Patch("/profile/profile-picture", s.authed(s.uploadPicture))
	r.Delete("/profile/profile-picture", s.authed(s.removePicture))

	r.Get("/activity", s.authed(s.activities))
	r.Get("/statistics", s.authed(s.statistics))
	r.Get("/binaries/macos_client/latest", s.latestBinaries)

	return r
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		f, failing := s.failures[r.URL.Path]
		d := s.delay[r.URL.Path]
		s.mu.Unlock()

		if d > 0 {
			select {
			case <-time.After(d):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			writeJSON(w, f.status, map[string]string{"error": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, a *account)

func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(cookie.DefaultName)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		s.mu.Lock()
		name, ok := s.tokens[c.Value]
		a := s.users[name]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		h(w, r, a)
	}
}

func setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.DefaultName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   86400,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in backend.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	s.mu.Lock()
	var match *account
	for _, a := range s.users {
		if (in.Username != "" && a.user.Username == in.Username) || (in.Email != "" && a.user.Email == in.Email) {
			match = a
		}
	}
	token := ""
	for t, name := range s.tokens {
		if match != nil && name == match.user.Username {
			token = t
		}
	}
	s.mu.Unlock()

	if match == nil || match.password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	if token == "" {
		token = "token-" + match.user.Username
		s.mu.Lock()
		s.tokens[token] = match.user.Username
		s.mu.Unlock()
	}
	setSession(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"error": nil})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in backend.Registration
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	s.mu.Lock()
	if _, taken := s.users[in.Username]; taken {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Username already taken"})
		return
	}
	token := s.addUser(backend.User{Username: in.Username, Email: in.Email, Name: in.Name}, in.Password)
	s.mu.Unlock()

	setSession(w, token)
	writeJSON(w, http.StatusCreated, map[string]any{"error": nil})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	for t, name := range s.tokens {
		if name == a.user.Username {
			delete(s.tokens, t)
		}
	}
	s.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: cookie.DefaultName, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]any{"error": nil})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	u := a.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) usernameExists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, ok := s.users[r.URL.Query().Get("username")]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"exists": ok})
}

func (s *Server) authCode(w http.ResponseWriter, _ *http.Request, a *account) {
	writeJSON(w, http.StatusOK, map[string]string{"code": "code-" + a.user.ID})
}

func (s *Server) listNotes(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	notes := append([]backend.Note{}, a.notes...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range a.notes {
		if n.ID == param(r, "id") {
			writeJSON(w, http.StatusOK, n)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Note not found"})
}

func (s *Server) deploy(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range a.notes {
		if n.ID == param(r, "id") {
			a.notes[i].Deployed = true
			if a.notes[i].Slug == "" {
				a.notes[i].Slug = slugify(n.Title)
			}
			writeJSON(w, http.StatusOK, a.notes[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Note not found"})
}

func (s *Server) undeploy(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range a.notes {
		if n.ID == param(r, "id") {
			a.notes[i].Deployed = false
			writeJSON(w, http.StatusOK, map[string]any{"error": nil})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Note not found"})
}

func (s *Server) publicNotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[param(r, "username")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}
	out := []backend.Note{}
	for _, n := range a.notes {
		if n.Deployed {
			out = append(out, n)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) publicNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.users[param(r, "username")]; ok {
		for _, n := range a.notes {
			if n.Deployed && n.Slug == param(r, "slug") {
				writeJSON(w, http.StatusOK, n)
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Note not found"})
}

func (s *Server) publicProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[param(r, "username")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}
	u := a.user
	u.Email = ""
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) description(w http.ResponseWriter, r *http.Request, a *account) {
	var in struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	s.mu.Lock()
	a.user.Description = in.Description
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"error": nil})
}

func (s *Server) uploadPicture(w http.ResponseWriter, r *http.Request, a *account) {
	f, _, err := r.FormFile("profile_picture")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid file"})
		return
	}
	s.mu.Lock()
	a.picture = data
	a.user.ProfilePictureURL = "https://cdn.example.com/" + a.user.ID + ".png"
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"error": nil})
}

func (s *Server) removePicture(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	a.picture = nil
	a.user.ProfilePictureURL = ""
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"error": nil})
}

func (s *Server) activities(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	acts := append([]backend.Activity{}, a.activity...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"activities": acts})
}

func (s *Server) statistics(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st backend.Stats
	for _, n := range a.notes {
		st.TotalNotes++
		st.TotalViews += n.Views
		if n.Deployed {
			st.DeployedNotes++
		}
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) latestBinaries(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	b := s.binaries
	s.mu.Unlock()
	if b.Intel == "" && b.Arm == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No release found"})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// param decodes a path parameter that chi matched against the escaped path.
func param(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if s, err := url.PathUnescape(v); err == nil {
		return s
	}
	return v
}

func slugify(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), "-"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
