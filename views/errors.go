package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/webnotes/notesweb/handler"
)

func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return layout(layoutParams{Title: "Error"}, component(func(w *writer) {
		w.el("h1", strconv.Itoa(p.Status))
		w.el("p", p.Message)
		if p.RequestID != "" {
			w.el("small", "Request ID: "+p.RequestID, "class", "request-id")
		}
	}))
}
