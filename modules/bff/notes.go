package bff

import (
	"net/http"

	"github.com/webnotes/notesweb/binder"
	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/modules/notes"
	"github.com/webnotes/notesweb/pkg/backend"
)

type listRequest struct {
	Refresh bool `query:"refresh"`
}

func noteMeta(list []backend.Note) map[string]any {
	recent, deployed := notes.Split(list)
	return map[string]any{"total": len(list), "recent": len(recent), "deployed": len(deployed)}
}

func (a *API) listNotes() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req listRequest) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		list, err := a.notes.List(ctx, token, req.Refresh)
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(list, handler.WithJSONMeta(noteMeta(list)))
	}, handler.WithBinders[handler.Context, listRequest](binder.BindQuery()))
}

// streamNotes pushes the session's note list as a datastar "notes" signal,
// first the current list and then every change until the client leaves.
func (a *API) streamNotes() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		if !handler.IsDataStar(ctx.Request()) {
			return handler.JSONError(errEventStreamRequired)
		}
		updates, cancel := a.notes.Subscribe(token)
		list, err := a.notes.List(ctx, token, false)
		if err != nil {
			cancel()
			return a.fail(ctx, err)
		}

		return handler.SSE(func(stream handler.StreamContext) error {
			defer cancel()
			if err := stream.SendSignals(map[string]any{"notes": list}); err != nil {
				return err
			}
			for {
				select {
				case <-stream.Done():
					return nil
				case next, ok := <-updates:
					if !ok {
						return nil
					}
					if err := stream.SendSignals(map[string]any{"notes": next}); err != nil {
						return err
					}
				}
			}
		})
	})
}

func (a *API) getNote() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		n, err := a.notes.Get(ctx, token, handler.PathParam(ctx, "id"))
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(n)
	})
}

func (a *API) deploy() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		n, err := a.notes.Deploy(ctx, token, handler.PathParam(ctx, "id"))
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(n)
	})
}

func (a *API) undeploy() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		if err := a.notes.Undeploy(ctx, token, handler.PathParam(ctx, "id")); err != nil {
			return a.fail(ctx, err)
		}
		return handler.Empty()
	})
}
