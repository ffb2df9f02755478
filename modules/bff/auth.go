package bff

import (
	"net/http"

	"github.com/webnotes/notesweb/binder"
	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/modules/auth"
	"github.com/webnotes/notesweb/pkg/backend"
)

type loginRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
	Username   string `json:"username" form:"username"`
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
}

func (r loginRequest) id() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Username != "":
		return r.Username
	}
	return r.Email
}

type registerRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

type usernameRequest struct {
	Username string `query:"username"`
}

// setCookieOptions relays upstream Set-Cookie lines on a JSON response.
func setCookieOptions(h http.Header) []handler.JSONOption {
	lines := h.Values("Set-Cookie")
	opts := make([]handler.JSONOption, 0, len(lines))
	for _, line := range lines {
		opts = append(opts, handler.WithJSONHeader("Set-Cookie", line))
	}
	return opts
}

func (a *API) login() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req loginRequest) handler.Response {
		sess, err := a.auth.Login(ctx, req.id(), req.Password)
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(sess.User, setCookieOptions(sess.Header)...)
	}, handler.WithBinders[handler.Context, loginRequest](binder.BindJSON(), binder.BindForm()))
}

func (a *API) register() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req registerRequest) handler.Response {
		if err := auth.ValidateRegistration(backend.Registration(req)); err != nil {
			return a.fail(ctx, err)
		}
		sess, err := a.auth.Register(ctx, backend.Registration(req))
		if err != nil {
			return a.fail(ctx, err)
		}
		opts := append(setCookieOptions(sess.Header), handler.WithJSONStatus(http.StatusCreated))
		return handler.JSON(sess.User, opts...)
	}, handler.WithBinders[handler.Context, registerRequest](binder.BindJSON(), binder.BindForm()))
}

// logout always clears the cookie, whatever the backend says.
func (a *API) logout() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		if token, ok := a.auth.Cookie().Token(ctx.Request()); ok {
			_ = a.auth.Logout(ctx, token)
			a.notes.Forget(token)
		}
		a.auth.Cookie().Clear(ctx.ResponseWriter())
		return handler.Empty()
	})
}

func (a *API) me() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		user, err := a.auth.Current(ctx, token)
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(user)
	})
}

func (a *API) authCode() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		token, err := a.session(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		code, err := a.auth.AuthCode(ctx, token)
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(map[string]string{"code": code})
	})
}

func (a *API) usernameExists() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req usernameRequest) handler.Response {
		exists, err := a.auth.UsernameExists(ctx, req.Username)
		if err != nil {
			return a.fail(ctx, err)
		}
		return handler.JSON(map[string]bool{"exists": exists})
	}, handler.WithBinders[handler.Context, usernameRequest](binder.BindQuery()))
}
