package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// DatastarScript is the datastar client bundle every page loads.
var DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// writer accumulates markup and remembers the first write error.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

// text writes s HTML-escaped.
func (w *writer) text(s string) { w.raw(templ.EscapeString(s)) }

// tag writes <name attr="value"...>, escaping attribute values. attrs
// alternate names and values.
func (w *writer) tag(name string, attrs ...string) {
	var b strings.Builder
	b.WriteString("<" + name)
	for i := 0; i+1 < len(attrs); i += 2 {
		fmt.Fprintf(&b, ` %s="%s"`, attrs[i], templ.EscapeString(attrs[i+1]))
	}
	b.WriteString(">")
	w.raw(b.String())
}

func (w *writer) el(name, content string, attrs ...string) {
	w.tag(name, attrs...)
	w.text(content)
	w.raw("</" + name + ">")
}

func (w *writer) render(c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(w.ctx, w.w)
	}
}

func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx, w: out}
		fn(w)
		return w.err
	})
}
