package auth

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/webnotes/notesweb/binder"
	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/logger"
	"github.com/webnotes/notesweb/pkg/validator"
)

const (
	DashboardPath = "/dashboard"
	HomePath      = "/"
)

// Views renders the sign-in pages. Page components render the whole
// document; Form components are patched in place for datastar requests.
type Views struct {
	LoginPage    func(LoginParams) templ.Component
	LoginForm    func(LoginParams) templ.Component
	RegisterPage func(RegisterParams) templ.Component
	RegisterForm func(RegisterParams) templ.Component
}

type LoginParams struct {
	Identifier string
	ReturnURL  string
	Error      string
}

type RegisterParams struct {
	Email     string
	Username  string
	Name      string
	ReturnURL string
	Error     string
	Fields    handler.ValidationError
}

// LoginRequest is read from the query on GET and the form on POST.
type LoginRequest struct {
	Identifier string `form:"identifier"`
	Password   string `form:"password"`
	ReturnURL  string `form:"returnUrl" query:"returnUrl"`
	Next       string `query:"next"`
}

type RegisterRequest struct {
	Email     string `form:"email"`
	Username  string `form:"username"`
	Name      string `form:"name"`
	Password  string `form:"password"`
	ReturnURL string `form:"returnUrl" query:"returnUrl"`
	Next      string `query:"next"`
}

// Pages serves /login, /register and /logout.
type Pages struct {
	svc          *Service
	views        Views
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewPages(svc *Service, views Views, errorHandler handler.ErrorHandler[handler.Context]) *Pages {
	return &Pages{svc: svc, views: views, errorHandler: errorHandler}
}

func (p *Pages) Handle() http.Handler {
	r := chi.NewRouter()

	r.HandleFunc("/login", handler.Wrap(p.login,
		handler.WithBinders[handler.Context, LoginRequest](binder.BindQuery(), binder.BindForm()),
		handler.WithErrorHandler[handler.Context, LoginRequest](p.errorHandler),
	))
	r.HandleFunc("/register", handler.Wrap(p.register,
		handler.WithBinders[handler.Context, RegisterRequest](binder.BindQuery(), binder.BindForm()),
		handler.WithErrorHandler[handler.Context, RegisterRequest](p.errorHandler),
	))
	r.Post("/logout", handler.Wrap(p.logout,
		handler.WithErrorHandler[handler.Context, struct{}](p.errorHandler),
	))

	return r
}

func (p *Pages) login(ctx handler.Context, req LoginRequest) handler.Response {
	params := LoginParams{
		Identifier: req.Identifier,
		ReturnURL:  p.returnURL(req.ReturnURL, req.Next),
	}
	if ctx.Request().Method != http.MethodPost {
		return handler.Templ(p.views.LoginPage(params))
	}

	sess, err := p.svc.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		p.svc.log.InfoContext(ctx, "login failed", logger.Component("auth"), logger.Error(err))
		params.Error = userMessage(err)
		return handler.TemplPartial(p.views.LoginForm(params), p.views.LoginPage(params),
			handler.WithTarget("#login-form"))
	}
	return handler.RedirectWithHeader(params.ReturnURL, setCookies(sess.Header))
}

func (p *Pages) register(ctx handler.Context, req RegisterRequest) handler.Response {
	params := RegisterParams{
		Email:     req.Email,
		Username:  req.Username,
		Name:      req.Name,
		ReturnURL: p.returnURL(req.ReturnURL, req.Next),
	}
	if ctx.Request().Method != http.MethodPost {
		return handler.Templ(p.views.RegisterPage(params))
	}

	if fields := validateRegistration(req); !fields.IsEmpty() {
		params.Fields = fields
		params.Error = "Please correct the highlighted fields."
		return handler.TemplPartial(p.views.RegisterForm(params), p.views.RegisterPage(params),
			handler.WithTarget("#register-form"))
	}

	sess, err := p.svc.Register(ctx, backend.Registration{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		p.svc.log.InfoContext(ctx, "registration failed", logger.Component("auth"), logger.Error(err))
		params.Error = userMessage(err)
		return handler.TemplPartial(p.views.RegisterForm(params), p.views.RegisterPage(params),
			handler.WithTarget("#register-form"))
	}
	return handler.RedirectWithHeader(params.ReturnURL, setCookies(sess.Header))
}

func (p *Pages) logout(ctx handler.Context, _ struct{}) handler.Response {
	if token, ok := p.svc.session.Token(ctx.Request()); ok {
		_ = p.svc.Logout(ctx, token)
	}
	p.svc.session.Clear(ctx.ResponseWriter())
	return handler.Redirect(HomePath)
}

func (p *Pages) returnURL(returnURL, next string) string {
	return p.svc.SafeReturnURL(url.Values{"returnUrl": {returnURL}, "next": {next}})
}

func validateRegistration(req RegisterRequest) handler.ValidationError {
	err := ValidateRegistration(backend.Registration{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return handler.ValidationError(verrs.Values())
	}
	return handler.ValidationError{}
}

func setCookies(h http.Header) http.Header {
	out := http.Header{}
	for _, line := range h.Values("Set-Cookie") {
		out.Add("Set-Cookie", line)
	}
	return out
}

// userMessage turns a login or registration failure into text for the
// form. Backend 4xx messages are shown as sent.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "Please fill in all required fields."
	case errors.Is(err, ErrNoSession):
		return "Signed in, but no session was started. Please try again."
	}
	if status := backend.StatusOf(err); status >= 400 && status < 500 {
		if msg := backend.MessageOf(err); msg != "" {
			return msg
		}
		if status == http.StatusUnauthorized {
			return "Invalid username or password."
		}
	}
	return "Something went wrong. Please try again."
}
