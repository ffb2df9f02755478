package pages

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/modules/auth"
	"github.com/webnotes/notesweb/modules/notes"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/logger"
	"github.com/webnotes/notesweb/pkg/releases"
	"github.com/webnotes/notesweb/pkg/tenant"
)

// genericError is what pages show when a backend call fails for a reason
// the user cannot act on.
const genericError = "We couldn't load this right now. Please try again in a moment."

// Views renders every server-side page. The dashboard views receive the
// signed-in user; the Profile and Note views render tenant pages.
type Views struct {
	Home            func(HomeParams) templ.Component
	UserGuide       func() templ.Component
	Dashboard       func(DashboardParams) templ.Component
	Notes           func(NotesParams) templ.Component
	NotesList       func(NotesParams) templ.Component
	Activity        func(ActivityParams) templ.Component
	Settings        func(SettingsParams) templ.Component
	Client          func(ClientParams) templ.Component
	AuthorizeClient func(AuthorizeParams) templ.Component
	Profile         func(ProfileParams) templ.Component
	Note            func(NoteParams) templ.Component
	NotFound        func() templ.Component
}

type HomeParams struct {
	SignedIn bool
}

type DashboardParams struct {
	User     backend.User
	Stats    backend.Stats
	Recent   []backend.Note
	Deployed []backend.Note
	Error    string
}

type NotesParams struct {
	User       backend.User
	Recent     []backend.Note
	Deployed   []backend.Note
	RootDomain string
	Error      string
}

type ActivityParams struct {
	User       backend.User
	Activities []backend.Activity
	Error      string
}

type SettingsParams struct {
	User backend.User
}

type ClientParams struct {
	User     backend.User
	Binaries backend.Binaries
	Error    string
}

type AuthorizeParams struct {
	User  backend.User
	Code  string
	Error string
}

type ProfileParams struct {
	User  backend.User
	Notes []backend.Note
}

type NoteParams struct {
	Author backend.User
	Note   backend.Note
	// HTML is the sanitized note body with its title headings removed.
	HTML string
}

// Pages serves the landing, dashboard and tenant pages.
type Pages struct {
	cfg          Config
	auth         *auth.Service
	notes        *notes.Service
	client       *backend.Client
	releases     releases.Source
	public       *Public
	views        Views
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

type Deps struct {
	Auth     *auth.Service
	Notes    *notes.Service
	Client   *backend.Client
	Releases releases.Source
	Public   *Public
}

type Option func(*Pages)

func WithLogger(l *slog.Logger) Option {
	return func(p *Pages) {
		if l != nil {
			p.log = l
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(p *Pages) {
		if h != nil {
			p.errorHandler = h
		}
	}
}

func New(cfg Config, deps Deps, views Views, opts ...Option) *Pages {
	p := &Pages{
		cfg:      cfg,
		auth:     deps.Auth,
		notes:    deps.Notes,
		client:   deps.Client,
		releases: deps.Releases,
		public:   deps.Public,
		views:    views,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.errorHandler == nil {
		p.errorHandler = handler.NewErrorHandler(p.log, nil)
	}
	return p
}

// Handle mounts the page routes on r. The profile routes only answer
// requests rewritten from a tenant host.
func (p *Pages) Handle(r chi.Router) {
	notFound := http.HandlerFunc(p.notFound)
	r.NotFound(notFound)

	r.Get("/", wrap(p, p.home))
	r.Get("/user-guide", wrap(p, p.userGuide))

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", wrap(p, p.dashboard))
		r.Get("/notes", wrap(p, p.notesPage))
		r.Get("/activity", wrap(p, p.activity))
		r.Get("/settings", wrap(p, p.settings))
		r.Get("/client", wrap(p, p.clientPage))
	})
	r.Get("/authorize-client", wrap(p, p.authorizeClient))

	r.Group(func(r chi.Router) {
		r.Use(tenant.RequireRewritten(notFound))
		r.Get("/profile/{username}", wrap(p, p.profile))
		r.Get("/profile/{username}/note/{slug}", wrap(p, p.note))
	})
}

func wrap(p *Pages, h handler.HandlerFunc[handler.Context, struct{}]) http.HandlerFunc {
	return handler.Wrap(h, handler.WithErrorHandler[handler.Context, struct{}](p.errorHandler))
}

func (p *Pages) notFound(w http.ResponseWriter, r *http.Request) {
	if p.views.NotFound == nil {
		http.NotFound(w, r)
		return
	}
	_ = handler.TemplStatus(http.StatusNotFound, p.views.NotFound()).Render(w, r)
}

func (p *Pages) home(ctx handler.Context, _ struct{}) handler.Response {
	_, signedIn := p.auth.Cookie().Token(ctx.Request())
	return handler.Templ(p.views.Home(HomeParams{SignedIn: signedIn}))
}

func (p *Pages) userGuide(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(p.views.UserGuide())
}
