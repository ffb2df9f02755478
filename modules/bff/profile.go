package bff

import (
	"net/http"

	"github.com/webnotes/notesweb/binder"
	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/pkg/backend"
)

type descriptionRequest struct {
	Description string `json:"description" form:"description"`
}

func (a *API) updateDescription() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req descriptionRequest) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		if err := a.client.UpdateDescription(ctx, token, req.Description); err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(map[string]string{"description": req.Description})
	}, handler.WithBinders[handler.Context, descriptionRequest](binder.BindJSON(), binder.BindForm()))
}

// updatePicture relays a multipart "profile_picture" upload.
func (a *API) updatePicture() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		r := ctx.Request()
		r.Body = http.MaxBytesReader(ctx.ResponseWriter(), r.Body, a.cfg.MaxUploadSize+binder.DefaultMaxMemory)
		file, err := binder.GetFile(r, "profile_picture", a.cfg.MaxUploadSize)
		if err != nil {
			return a.fail(ctx, err)
		}
		err = a.client.UpdateProfilePicture(ctx, token, backend.Upload{
			Filename:    file.Filename,
			ContentType: file.ContentType,
			Data:        file.Content,
		})
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.Empty()
	})
}

func (a *API) removePicture() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		if err := a.client.RemoveProfilePicture(ctx, token); err != nil {
			return a.fail(ctx, err)
		}
		return handler.Empty()
	})
}
