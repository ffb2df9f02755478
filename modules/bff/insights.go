package bff

import (
	"net/http"

	"github.com/webnotes/notesweb/handler"
)

func (a *API) activity() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		acts, err := a.client.Activities(ctx, token)
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(acts)
	})
}

func (a *API) statistics() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		st, err := a.client.Statistics(ctx, token)
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(st)
	})
}

// latestRelease needs no session: the download page is public.
func (a *API) latestRelease() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		b, err := a.releases.Latest(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(b)
	})
}
