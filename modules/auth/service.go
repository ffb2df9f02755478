package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/cookie"
	"github.com/webnotes/notesweb/pkg/gate"
	"github.com/webnotes/notesweb/pkg/logger"
)

// MinUsernameLength is the shortest username the backend is asked about.
const MinUsernameLength = 4

var (
	ErrMissingCredentials = errors.New("auth: missing credentials")
	ErrUsernameTooShort   = fmt.Errorf("auth: username must be at least %d characters long", MinUsernameLength)
	// ErrNoSession means the backend accepted the credentials but did not
	// issue a session cookie.
	ErrNoSession = errors.New("auth: backend issued no session")
)

// Session is an established login: the token, the account it belongs to
// and the upstream headers that carry the Set-Cookie lines for the
// browser.
type Session struct {
	Token  string
	User   backend.User
	Header http.Header
}

// Service is the server side of the login flow. It never inspects tokens;
// the backend owns them.
type Service struct {
	client  *backend.Client
	session *cookie.Session
	log     *slog.Logger
}

type Option func(*Service)

func WithSession(s *cookie.Session) Option {
	return func(svc *Service) {
		if s != nil {
			svc.session = s
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

func NewService(client *backend.Client, opts ...Option) *Service {
	s := &Service{
		client:  client,
		session: cookie.NewSession(cookie.DefaultName),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cookie returns the session cookie the service reads and issues.
func (s *Service) Cookie() *cookie.Session { return s.session }

// Login signs in with a username or e-mail address. The login only counts
// once the new session has been read back through Current.
func (s *Service) Login(ctx context.Context, identifier, password string) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}
	header, err := s.client.Login(ctx, backend.NewCredentials(identifier, password))
	if err != nil {
		return Session{}, err
	}
	return s.confirm(ctx, header)
}

// Register creates an account and confirms the session it comes with.
func (s *Service) Register(ctx context.Context, reg backend.Registration) (Session, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Username = strings.TrimSpace(reg.Username)
	if reg.Email == "" || reg.Username == "" || reg.Password == "" {
		return Session{}, ErrMissingCredentials
	}
	header, err := s.client.Register(ctx, reg)
	if err != nil {
		return Session{}, err
	}
	return s.confirm(ctx, header)
}

func (s *Service) confirm(ctx context.Context, header http.Header) (Session, error) {
	token, ok := s.session.FromSetCookie(header)
	if !ok {
		return Session{}, ErrNoSession
	}
	user, err := s.client.Me(ctx, token)
	if err != nil {
		return Session{}, fmt.Errorf("auth: confirm session: %w", err)
	}
	return Session{Token: token, User: user, Header: header}, nil
}

// Logout ends the session upstream. Callers clear the cookie whatever the
// outcome.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.client.Logout(ctx, token); err != nil {
		s.log.WarnContext(ctx, "backend logout failed",
			logger.Component("auth"),
			logger.Error(err),
		)
		return err
	}
	return nil
}

// Current returns the account behind token.
func (s *Service) Current(ctx context.Context, token string) (backend.User, error) {
	if token == "" {
		return backend.User{}, backend.ErrUnauthorized
	}
	return s.client.Me(ctx, token)
}

func (s *Service) UsernameExists(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return false, ErrMissingCredentials
	case utf8.RuneCountInString(username) < MinUsernameLength:
		return false, ErrUsernameTooShort
	}
	return s.client.UsernameExists(ctx, username)
}

// AuthCode issues the code the desktop client exchanges for a session.
func (s *Service) AuthCode(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", backend.ErrUnauthorized
	}
	return s.client.AuthCode(ctx, token)
}

// SafeReturnURL is where to go after logging in.
func (s *Service) SafeReturnURL(q url.Values) string {
	return gate.SafeReturnURL(q, DashboardPath)
}

// Validator adapts Current to the gate's session check: a 401 is a
// definitive no, anything else but success is inconclusive.
func (s *Service) Validator() gate.Validator {
	return gate.ValidatorFunc(func(ctx context.Context, token string) error {
		_, err := s.client.Me(ctx, token)
		if errors.Is(err, backend.ErrUnauthorized) {
			return errors.Join(gate.ErrInvalidSession, err)
		}
		return err
	})
}
