package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url    string
	code   int
	header http.Header
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, v := range rr.header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(rr.url)
	}
	http.Redirect(w, r, rr.url, rr.code)
	return nil
}

// Redirect answers 303 See Other, or a client-side navigation for datastar
// requests.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

// RedirectWithHeader is Redirect plus response headers set before the
// redirect is written, such as relayed Set-Cookie lines.
func RedirectWithHeader(url string, header http.Header) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther, header: header}
}
