package bff

import (
	"errors"
	"net/http"
	"strings"

	"github.com/webnotes/notesweb/binder"
	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/modules/auth"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/releases"
	"github.com/webnotes/notesweb/pkg/validator"
)

var (
	errUnauthorized        = handler.ErrUnauthorized.WithMessage("Unauthorized")
	errEventStreamRequired = handler.NewHTTPError(http.StatusBadRequest, "event_stream_required")
)

// apiError maps a failure to what the API client sees. Upstream 4xx
// answers keep their status and message. ok is false for failures that end
// up as a 500 with a generic message.
func apiError(err error) (mapped error, ok bool) {
	var httpErr handler.HTTPError
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return handler.ValidationError(verrs.Values()), true
	}
	switch {
	case errors.As(err, &httpErr):
		return httpErr, true
	case errors.Is(err, auth.ErrMissingCredentials):
		return handler.ErrBadRequest.WithMessage("Missing required fields"), true
	case errors.Is(err, auth.ErrUsernameTooShort):
		return handler.ErrBadRequest.WithMessage("Username must be at least 4 characters long"), true
	case errors.Is(err, releases.ErrNotFound):
		return handler.ErrNotFound.WithMessage("No release found"), true
	case errors.Is(err, binder.ErrMissingFile):
		return handler.ErrBadRequest.WithMessage("No file uploaded"), true
	case errors.Is(err, binder.ErrFileTooLarge):
		return handler.NewHTTPError(http.StatusRequestEntityTooLarge, "file_too_large").WithMessage("File too large"), true
	case errors.Is(err, binder.ErrInvalidFile):
		return handler.ErrBadRequest.WithMessage("Invalid file upload"), true
	}

	status := backend.StatusOf(err)
	if status == http.StatusUnauthorized {
		return errUnauthorized, true
	}
	if status >= 400 && status < 500 {
		msg := backend.MessageOf(err)
		if msg == "" {
			msg = http.StatusText(status)
		}
		return handler.NewHTTPError(status, statusKey(status)).WithMessage(msg), true
	}
	return err, false
}

func statusKey(status int) string {
	return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
