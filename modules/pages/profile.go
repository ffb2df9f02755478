package pages

import (
	"errors"
	"net/http"

	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/sanitizer"
)

func (p *Pages) notFoundPage() handler.Response {
	if p.views.NotFound == nil {
		return handler.Error(handler.ErrNotFound)
	}
	return handler.TemplStatus(http.StatusNotFound, p.views.NotFound())
}

func (p *Pages) profile(ctx handler.Context, _ struct{}) handler.Response {
	username := handler.PathParam(ctx, "username")

	user, err := p.public.Profile(ctx, username)
	if errors.Is(err, backend.ErrNotFound) {
		return p.notFoundPage()
	}
	if err != nil {
		return handler.Error(err)
	}

	list, err := p.public.Notes(ctx, username)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		return handler.Error(err)
	}
	return handler.Templ(p.views.Profile(ProfileParams{User: user, Notes: list}))
}

func (p *Pages) note(ctx handler.Context, _ struct{}) handler.Response {
	username := handler.PathParam(ctx, "username")

	n, err := p.public.Note(ctx, username, handler.PathParam(ctx, "slug"))
	if errors.Is(err, backend.ErrNotFound) {
		return p.notFoundPage()
	}
	if err != nil {
		return handler.Error(err)
	}

	author, err := p.public.Profile(ctx, username)
	if err != nil {
		author = backend.User{Username: username}
	}
	return handler.Templ(p.views.Note(NoteParams{
		Author: author,
		Note:   n,
		HTML:   sanitizer.Note(n.Body, n.Title),
	}))
}
