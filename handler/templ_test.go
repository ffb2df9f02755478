package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webnotes/notesweb/handler"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("browser gets full page", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplPartial(text("<li>x</li>"), text("<html>page</html>")).
			Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, "<html>page</html>", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("datastar gets patch", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplPartial(text(`<li id="n1">x</li>`), text("<html>page</html>")).Render(rec, r))

		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.NotContains(t, rec.Body.String(), "page")
	})

	t.Run("status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplStatus(http.StatusNotFound, text("missing")).
			Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires event stream", func(t *testing.T) {
		t.Parallel()
		err := handler.SSE(func(handler.StreamContext) error { return nil }).
			Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		var httpErr handler.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("sends signals", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()
		err := handler.SSE(func(ctx handler.StreamContext) error {
			return ctx.SendSignals(map[string]any{"count": 2})
		}).Render(rec, r)

		require.NoError(t, err)
		assert.Contains(t, rec.Body.String(), "datastar-patch-signals")
		assert.Contains(t, rec.Body.String(), `"count":2`)
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	page := func(p handler.ErrorPageParams) templ.Component {
		return text(p.Message)
	}
	eh := handler.NewErrorHandler(slog.New(slog.DiscardHandler), page)

	t.Run("page for browsers", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/x", nil)), handler.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not Found", rec.Body.String())
	})

	t.Run("envelope for json clients", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/x", nil)
		r.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, r), errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"internal_server_error"`)
		assert.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("no page configured", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		handler.NewErrorHandler(nil, nil)(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
