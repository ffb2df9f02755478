package binder

import (
	"fmt"
	"net/http"
)

// BindForm binds urlencoded and multipart form fields using `form` tags.
//
//	type loginForm struct {
//		Identifier string `form:"identifier"`
//		Password   string `form:"password"`
//		ReturnURL  string `form:"returnUrl"`
//	}
func BindForm() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		switch mediaType(r) {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
		default:
			return ErrBinderNotApplicable
		}
		return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)
	}
}

// BindQuery binds URL query parameters using `query` tags. It applies to
// every request.
func BindQuery() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
