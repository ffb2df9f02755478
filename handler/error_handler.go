package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/webnotes/notesweb/pkg/logger"
	"github.com/webnotes/notesweb/pkg/requestid"
)

// ErrorPageParams is what an error page is rendered from.
type ErrorPageParams struct {
	Status    int
	Message   string
	RequestID string
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	Status   int
	Message  string
	LogLevel slog.Level
}

// ClassifyError maps err to a status and a message safe to show users.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong. Please try again.",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.Status = httpErr.Code
		info.Message = httpErr.text()
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		info.Status = http.StatusBadRequest
		info.Message = valErr.Error()
	}

	info.LogLevel = slog.LevelError
	if info.Status < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler logs err and renders page for browsers. JSON and datastar
// clients receive the JSON envelope instead. A nil page falls back to
// http.Error.
func NewErrorHandler(log *slog.Logger, page func(ErrorPageParams) templ.Component) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		info := ClassifyError(err)
		reqID := requestid.FromContext(r.Context())

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Component("http"),
			logger.RequestID(reqID),
			logger.Error(err),
			logger.Status(info.Status),
			logger.Path(r.URL.Path),
			slog.String("method", r.Method),
		)

		switch {
		case IsDataStar(r) || wantsJSON(r):
			_ = JSONError(err).Render(w, r)
			return
		case page == nil:
			http.Error(w, info.Message, info.Status)
			return
		}

		comp := page(ErrorPageParams{Status: info.Status, Message: info.Message, RequestID: reqID})
		if renderErr := TemplStatus(info.Status, comp).Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error page",
				logger.Error(renderErr),
				logger.Event("render_error_page"),
			)
		}
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return accept == "application/json" || r.Header.Get("Content-Type") == "application/json"
}
