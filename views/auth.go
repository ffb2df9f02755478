package views

import (
	"github.com/a-h/templ"

	"github.com/webnotes/notesweb/modules/auth"
)

// AuthViews wires the sign-in pages.
func AuthViews() auth.Views {
	return auth.Views{
		LoginPage:    LoginPage,
		LoginForm:    LoginForm,
		RegisterPage: RegisterPage,
		RegisterForm: RegisterForm,
	}
}

func LoginPage(p auth.LoginParams) templ.Component {
	return layout(layoutParams{Title: "Log in"}, component(func(w *writer) {
		w.el("h1", "Log in")
		w.render(LoginForm(p))
		w.raw(`<p>No account yet? `)
		w.el("a", "Create one", "href", "/register")
		w.raw(`</p>`)
	}))
}

func LoginForm(p auth.LoginParams) templ.Component {
	return component(func(w *writer) {
		w.tag("form", "id", "login-form", "method", "post", "action", "/login")
		errorBanner(w, p.Error)
		w.tag("input", "type", "hidden", "name", "returnUrl", "value", p.ReturnURL)
		w.raw(`<label>Username or email`)
		w.tag("input", "name", "identifier", "autocomplete", "username", "required", "", "value", p.Identifier)
		w.raw(`</label><label>Password<input type="password" name="password" autocomplete="current-password" required></label>`,
			`<button type="submit">Log in</button></form>`)
	})
}

func RegisterPage(p auth.RegisterParams) templ.Component {
	return layout(layoutParams{Title: "Create account"}, component(func(w *writer) {
		w.el("h1", "Create your account")
		w.render(RegisterForm(p))
		w.raw(`<p>Already registered? `)
		w.el("a", "Log in", "href", "/login")
		w.raw(`</p>`)
	}))
}

func RegisterForm(p auth.RegisterParams) templ.Component {
	return component(func(w *writer) {
		w.tag("form", "id", "register-form", "method", "post", "action", "/register")
		errorBanner(w, p.Error)
		w.tag("input", "type", "hidden", "name", "returnUrl", "value", p.ReturnURL)

		field := func(label, name, kind, value string) {
			w.tag("label")
			w.text(label)
			w.tag("input", "type", kind, "name", name, "value", value)
			if msg := p.Fields.Get(name); msg != "" {
				w.el("small", msg, "class", "field-error")
			}
			w.raw(`</label>`)
		}
		field("Email", "email", "email", p.Email)
		field("Username", "username", "text", p.Username)
		field("Name", "name", "text", p.Name)
		field("Password", "password", "password", "")

		w.raw(`<button type="submit">Create account</button></form>`)
	})
}
