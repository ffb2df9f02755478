package binder

import "errors"

var (
	// ErrBinderNotApplicable is returned when a request's content type is
	// not the one a binder handles. handler.Wrap skips such binders.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrInvalidForm  = errors.New("invalid form data")
	ErrInvalidQuery = errors.New("invalid query parameter")
	ErrInvalidFile  = errors.New("invalid file upload")
	ErrFileTooLarge = errors.New("file too large")
	ErrMissingFile  = errors.New("missing file")
)
