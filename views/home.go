package views

import (
	"github.com/a-h/templ"

	"github.com/webnotes/notesweb/modules/pages"
)

func Home(p pages.HomeParams) templ.Component {
	return layout(layoutParams{Title: "Publish your notes"}, component(func(w *writer) {
		w.raw(`<section class="hero"><h1>Your notes, published.</h1>`,
			`<p>Write in Apple Notes, sync with the desktop client and share any note at your own subdomain.</p>`)
		if p.SignedIn {
			w.el("a", "Go to dashboard", "class", "button", "href", "/dashboard")
		} else {
			w.el("a", "Get started", "class", "button", "href", "/register")
			w.el("a", "Log in", "href", "/login")
		}
		w.raw(`</section>`)
	}))
}

func UserGuide() templ.Component {
	return layout(layoutParams{Title: "User guide"}, component(func(w *writer) {
		w.el("h1", "User guide")
		w.raw(`<ol>`)
		for _, step := range []string{
			"Create an account and pick a username: it becomes your subdomain.",
			"Download the desktop client from the dashboard and authorize it.",
			"Your notes sync automatically. Deploy the ones you want to share.",
			"Deployed notes are public at username.your-domain/slug.",
		} {
			w.el("li", step)
		}
		w.raw(`</ol>`)
	}))
}

func NotFound() templ.Component {
	return layout(layoutParams{Title: "Not found"}, component(func(w *writer) {
		w.el("h1", "Page not found")
		w.el("p", "The page you are looking for does not exist or is no longer published.")
		w.el("a", "Back home", "href", "/")
	}))
}
