package views

import (
	"github.com/a-h/templ"
)

type layoutParams struct {
	Title     string
	Dashboard bool
	Username  string
}

func layout(p layoutParams, body templ.Component) templ.Component {
	return component(func(w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.el("title", p.Title+" · WebNotes")
		w.tag("script", "type", "module", "src", DatastarScript)
		w.raw(`</script></head><body>`)

		w.raw(`<header class="site-header"><a class="brand" href="/">WebNotes</a><nav>`)
		if p.Dashboard {
			for _, link := range [][2]string{
				{"/dashboard", "Overview"},
				{"/dashboard/notes", "Notes"},
				{"/dashboard/activity", "Activity"},
				{"/dashboard/settings", "Settings"},
				{"/dashboard/client", "Desktop client"},
			} {
				w.el("a", link[1], "href", link[0])
			}
			w.el("span", p.Username, "class", "nav-user")
			w.raw(`<form method="post" action="/logout"><button type="submit">Log out</button></form>`)
		} else {
			w.el("a", "User guide", "href", "/user-guide")
		}
		w.raw(`</nav></header><main>`)
		w.render(body)
		w.raw(`</main></body></html>`)
	})
}

func errorBanner(w *writer, msg string) {
	if msg != "" {
		w.el("p", msg, "class", "error", "role", "alert")
	}
}
