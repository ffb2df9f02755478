package pages

import (
	"errors"
	"net/url"

	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/modules/notes"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/gate"
	"github.com/webnotes/notesweb/pkg/logger"
)

// fetches collects the outcome of the backend calls behind one page. A 401
// anywhere sends the visitor to log in; other failures are logged and
// shown as a generic message.
type fetches struct {
	p        *Pages
	ctx      handler.Context
	redirect handler.Response
	message  string
}

func (f *fetches) add(what string, err error) {
	if err == nil || f.redirect != nil {
		return
	}
	if errors.Is(err, backend.ErrUnauthorized) {
		f.redirect = f.p.toLogin(f.ctx)
		return
	}
	f.p.log.ErrorContext(f.ctx, "page fetch failed",
		logger.Component("pages"),
		logger.Path(f.ctx.Request().URL.Path),
		logger.Event(what),
		logger.Error(err),
	)
	f.message = genericError
}

// toLogin clears the dead session and redirects to the login page, coming
// back here afterwards.
func (p *Pages) toLogin(ctx handler.Context) handler.Response {
	p.auth.Cookie().Clear(ctx.ResponseWriter())
	q := url.Values{gate.ReturnURLParam: {ctx.Request().URL.RequestURI()}}
	return handler.Redirect("/login?" + q.Encode())
}

// session loads the signed-in user. token is empty when the response
// already redirects.
func (p *Pages) session(ctx handler.Context) (token string, user backend.User, f *fetches) {
	f = &fetches{p: p, ctx: ctx}
	token, ok := p.auth.Cookie().Token(ctx.Request())
	if !ok {
		f.redirect = p.toLogin(ctx)
		return "", user, f
	}
	user, err := p.auth.Current(ctx, token)
	f.add("current_user", err)
	return token, user, f
}

func (p *Pages) dashboard(ctx handler.Context, _ struct{}) handler.Response {
	token, user, f := p.session(ctx)
	if f.redirect != nil {
		return f.redirect
	}

	stats, err := p.client.Statistics(ctx, token)
	f.add("statistics", err)
	list, err := p.notes.List(ctx, token, false)
	f.add("notes", err)
	if f.redirect != nil {
		return f.redirect
	}

	recent, deployed := notes.Split(list)
	return handler.Templ(p.views.Dashboard(DashboardParams{
		User:     user,
		Stats:    stats,
		Recent:   recent,
		Deployed: deployed,
		Error:    f.message,
	}))
}

func (p *Pages) notesPage(ctx handler.Context, _ struct{}) handler.Response {
	token, user, f := p.session(ctx)
	if f.redirect != nil {
		return f.redirect
	}

	force := ctx.Request().URL.Query().Get("refresh") == "true"
	list, err := p.notes.List(ctx, token, force)
	f.add("notes", err)
	if f.redirect != nil {
		return f.redirect
	}

	recent, deployed := notes.Split(list)
	params := NotesParams{
		User:       user,
		Recent:     recent,
		Deployed:   deployed,
		RootDomain: p.cfg.RootDomain,
		Error:      f.message,
	}
	return handler.TemplPartial(p.views.NotesList(params), p.views.Notes(params), handler.WithTarget("#notes"))
}

func (p *Pages) activity(ctx handler.Context, _ struct{}) handler.Response {
	token, user, f := p.session(ctx)
	if f.redirect != nil {
		return f.redirect
	}

	acts, err := p.client.Activities(ctx, token)
	f.add("activity", err)
	if f.redirect != nil {
		return f.redirect
	}
	return handler.Templ(p.views.Activity(ActivityParams{User: user, Activities: acts, Error: f.message}))
}

func (p *Pages) settings(ctx handler.Context, _ struct{}) handler.Response {
	_, user, f := p.session(ctx)
	if f.redirect != nil {
		return f.redirect
	}
	return handler.Templ(p.views.Settings(SettingsParams{User: user}))
}

func (p *Pages) clientPage(ctx handler.Context, _ struct{}) handler.Response {
	_, user, f := p.session(ctx)
	if f.redirect != nil {
		return f.redirect
	}

	bins, err := p.releases.Latest(ctx)
	f.add("releases", err)
	return handler.Templ(p.views.Client(ClientParams{User: user, Binaries: bins, Error: f.message}))
}

func (p *Pages) authorizeClient(ctx handler.Context, _ struct{}) handler.Response {
	token, user, f := p.session(ctx)
	if f.redirect != nil {
		return f.redirect
	}

	code, err := p.auth.AuthCode(ctx, token)
	f.add("authcode", err)
	if f.redirect != nil {
		return f.redirect
	}
	return handler.Templ(p.views.AuthorizeClient(AuthorizeParams{User: user, Code: code, Error: f.message}))
}
