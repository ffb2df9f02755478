package views

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/webnotes/notesweb/modules/pages"
	"github.com/webnotes/notesweb/pkg/sanitizer"
)

// Profile is a tenant's front page. Links are relative to the tenant host.
func Profile(p pages.ProfileParams) templ.Component {
	return layout(layoutParams{Title: displayName(p.User)}, component(func(w *writer) {
		w.raw(`<section class="profile">`)
		if p.User.ProfilePictureURL != "" {
			w.tag("img", "src", p.User.ProfilePictureURL, "alt", p.User.Username, "class", "avatar")
		}
		w.el("h1", displayName(p.User))
		w.el("p", "@"+p.User.Username, "class", "username")
		if p.User.Description != "" {
			w.el("p", p.User.Description, "class", "bio")
		}
		for _, social := range [][2]string{
			{"https://twitter.com/", p.User.TwitterUsername},
			{"https://instagram.com/", p.User.InstagramUsername},
			{"https://github.com/", p.User.GithubUsername},
		} {
			if social[1] != "" {
				w.el("a", social[1], "href", social[0]+social[1], "rel", "noopener")
			}
		}
		w.raw(`</section>`)

		if len(p.Notes) == 0 {
			w.el("p", "No published notes yet.", "class", "empty")
			return
		}
		w.raw(`<ul class="notes">`)
		for _, n := range p.Notes {
			w.raw(`<li>`)
			w.el("a", n.Title, "href", "/"+url.PathEscape(n.Slug))
			w.el("p", sanitizer.Excerpt(sanitizer.PlainText(n.Body), 200), "class", "excerpt")
			w.raw(`</li>`)
		}
		w.raw(`</ul>`)
	}))
}

// Note renders a published note. Its HTML must already be sanitized.
func Note(p pages.NoteParams) templ.Component {
	return layout(layoutParams{Title: p.Note.Title}, component(func(w *writer) {
		w.raw(`<article class="note">`)
		w.el("h1", p.Note.Title)
		w.raw(`<p class="byline">`)
		w.el("a", displayName(p.Author), "href", "/")
		w.el("time", p.Note.UpdatedAt.Format("January 2, 2006"), "datetime", p.Note.UpdatedAt.Format("2006-01-02"))
		w.raw(`</p><div class="note-content">`)
		w.render(templ.Raw(p.HTML))
		w.raw(`</div></article>`)
	}))
}
