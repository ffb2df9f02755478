package views

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/webnotes/notesweb/modules/pages"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/sanitizer"
)

// PageViews wires every page but the sign-in ones.
func PageViews() pages.Views {
	return pages.Views{
		Home:            Home,
		UserGuide:       UserGuide,
		Dashboard:       Dashboard,
		Notes:           Notes,
		NotesList:       NotesList,
		Activity:        Activity,
		Settings:        Settings,
		Client:          Client,
		AuthorizeClient: AuthorizeClient,
		Profile:         Profile,
		Note:            Note,
		NotFound:        NotFound,
	}
}

// PublicNoteURL is where a deployed note is served, or "" without a root
// domain.
func PublicNoteURL(username, rootDomain, slug string) string {
	if rootDomain == "" || slug == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.%s/%s", username, rootDomain, url.PathEscape(slug))
}

func dashboardLayout(title string, u backend.User, body templ.Component) templ.Component {
	return layout(layoutParams{Title: title, Dashboard: true, Username: u.Username}, body)
}

func Dashboard(p pages.DashboardParams) templ.Component {
	return dashboardLayout("Dashboard", p.User, component(func(w *writer) {
		w.el("h1", "Welcome back, "+displayName(p.User))
		errorBanner(w, p.Error)

		w.raw(`<section class="stats">`)
		for _, s := range []struct {
			label string
			value int
		}{
			{"Notes", p.Stats.TotalNotes},
			{"Deployed", p.Stats.DeployedNotes},
			{"Views", p.Stats.TotalViews},
		} {
			w.raw(`<div class="stat">`)
			w.el("strong", strconv.Itoa(s.value))
			w.el("span", s.label)
			w.raw(`</div>`)
		}
		w.raw(`</section>`)

		if !p.User.HasConnectedClient {
			w.raw(`<p class="notice">Connect the desktop client to start syncing. `)
			w.el("a", "Set it up", "href", "/dashboard/client")
			w.raw(`</p>`)
		}

		w.el("h2", "Recently synced")
		noteRows(w, p.Recent, p.User.Username, "")
		w.el("a", "All notes", "href", "/dashboard/notes")
	}))
}

func Notes(p pages.NotesParams) templ.Component {
	return dashboardLayout("Notes", p.User, component(func(w *writer) {
		w.el("h1", "Notes")
		w.tag("button", "data-on-click", "@get('/dashboard/notes?refresh=true')")
		w.raw(`Refresh</button>`)
		w.render(NotesList(p))
	}))
}

// NotesList is the part of the notes page that refreshes in place.
func NotesList(p pages.NotesParams) templ.Component {
	return component(func(w *writer) {
		w.raw(`<div id="notes">`)
		errorBanner(w, p.Error)
		w.el("h2", "Deployed")
		noteRows(w, p.Deployed, p.User.Username, p.RootDomain)
		w.el("h2", "Not deployed")
		noteRows(w, p.Recent, p.User.Username, p.RootDomain)
		w.raw(`</div>`)
	})
}

func noteRows(w *writer, notes []backend.Note, username, rootDomain string) {
	if len(notes) == 0 {
		w.el("p", "Nothing here yet.", "class", "empty")
		return
	}
	w.raw(`<ul class="notes">`)
	for _, n := range notes {
		w.tag("li", "id", "note-"+n.ID)
		w.el("strong", n.Title)
		w.el("p", sanitizer.Excerpt(sanitizer.PlainText(n.Body), 140), "class", "excerpt")
		w.el("time", n.UpdatedAt.Format("Jan 2, 2006"), "datetime", n.UpdatedAt.Format("2006-01-02"))
		if n.Deployed {
			if u := PublicNoteURL(username, rootDomain, n.Slug); u != "" {
				w.el("a", "View", "href", u, "target", "_blank", "rel", "noopener")
			}
			w.el("span", strconv.Itoa(n.Views)+" views", "class", "views")
			w.tag("button", "data-on-click", "@delete('/api/notes/"+n.ID+"/deploy').then(() => @get('/dashboard/notes'))")
			w.raw(`Unpublish</button>`)
		} else {
			w.tag("button", "data-on-click", "@post('/api/notes/"+n.ID+"/deploy').then(() => @get('/dashboard/notes'))")
			w.raw(`Publish</button>`)
		}
		w.raw(`</li>`)
	}
	w.raw(`</ul>`)
}

func Activity(p pages.ActivityParams) templ.Component {
	return dashboardLayout("Activity", p.User, component(func(w *writer) {
		w.el("h1", "Activity")
		errorBanner(w, p.Error)
		if len(p.Activities) == 0 && p.Error == "" {
			w.el("p", "No activity yet.", "class", "empty")
			return
		}
		w.raw(`<ul class="activity">`)
		for _, a := range p.Activities {
			w.raw(`<li>`)
			w.el("time", a.Timestamp.Format("Jan 2, 2006 15:04"), "datetime", a.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
			w.el("strong", activityLabel(a.Type), "class", "activity-"+a.Type)
			w.el("span", a.Description)
			w.raw(`</li>`)
		}
		w.raw(`</ul>`)
	}))
}

func Settings(p pages.SettingsParams) templ.Component {
	return dashboardLayout("Settings", p.User, component(func(w *writer) {
		w.el("h1", "Settings")

		w.el("h2", "Profile picture")
		if p.User.ProfilePictureURL != "" {
			w.tag("img", "src", p.User.ProfilePictureURL, "alt", p.User.Username, "class", "avatar")
			w.tag("button", "data-on-click", "@delete('/api/profile/picture')")
			w.raw(`Remove</button>`)
		}
		w.raw(`<form method="post" enctype="multipart/form-data" `,
			`data-on-submit="@patch('/api/profile/picture', {contentType: 'form'})">`,
			`<input type="file" name="profile_picture" accept="image/*">`,
			`<button type="submit">Upload</button></form>`)

		w.el("h2", "About you")
		w.tag("form", "data-signals-description", jsString(p.User.Description),
			"data-on-submit", "@patch('/api/profile/description')")
		w.raw(`<textarea data-bind-description></textarea><button type="submit">Save</button></form>`)

		w.el("h2", "Account")
		w.el("p", "Username: "+p.User.Username)
		w.el("p", "Email: "+p.User.Email)
	}))
}

func Client(p pages.ClientParams) templ.Component {
	return dashboardLayout("Desktop client", p.User, component(func(w *writer) {
		w.el("h1", "Desktop client")
		errorBanner(w, p.Error)
		if p.User.HasConnectedClient {
			w.el("p", "Your desktop client is connected.", "class", "success")
		}
		if p.Binaries.Arm != "" {
			w.el("a", "Download for Apple silicon", "class", "button", "href", p.Binaries.Arm)
		}
		if p.Binaries.Intel != "" {
			w.el("a", "Download for Intel Macs", "class", "button", "href", p.Binaries.Intel)
		}
		w.el("p", "After installing, the client opens this site to authorize itself.")
		w.el("a", "Authorize a client", "href", "/authorize-client")
	}))
}

func AuthorizeClient(p pages.AuthorizeParams) templ.Component {
	return dashboardLayout("Authorize client", p.User, component(func(w *writer) {
		w.el("h1", "Authorize the desktop client")
		errorBanner(w, p.Error)
		if p.Code != "" {
			w.el("p", "Enter this code in the desktop client:")
			w.el("code", p.Code, "class", "auth-code")
		}
	}))
}

// activityLabel turns an activity type such as "note_deployed" into
// "Note Deployed".
func activityLabel(t string) string {
	return cases.Title(language.English).String(strings.NewReplacer("_", " ", "-", " ").Replace(t))
}

func displayName(u backend.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// jsString quotes s as a JavaScript string literal for datastar
// expressions.
func jsString(s string) string {
	return strconv.Quote(s)
}
