package gate

import "net/url"

// Action is what the edge does with a request.
type Action string

const (
	ActionAllow    Action = "allow"
	ActionRewrite  Action = "rewrite"
	ActionRedirect Action = "redirect"
)

// Check is the outcome of the upstream session check.
type Check string

const (
	// CheckSkipped means no upstream call was made.
	CheckSkipped Check = "skipped"
	CheckValid   Check = "valid"
	// CheckInvalid is the definitive rejection (HTTP 401 upstream).
	CheckInvalid Check = "invalid"
	// CheckUnavailable covers every ambiguous failure: timeouts, transport
	// errors and non-401 error statuses.
	CheckUnavailable Check = "unavailable"
)

// Decision is the gate's verdict for one request.
type Decision struct {
	Route       Route
	Action      Action
	Location    string
	ClearCookie bool
	Check       Check
	Reason      string
}

// Paths are the redirect targets the gate uses.
type Paths struct {
	Login     string
	Dashboard string
}

// Decide applies the session policy to a classified request. It is pure:
// the caller runs the upstream check, if any, and passes its outcome.
// returnTo is the internal path of the original request.
func Decide(route Route, hasCookie bool, mode Mode, check Check, paths Paths, returnTo string) Decision {
	d := Decision{Route: route, Check: check}

	switch route {
	case RouteTenantRoot, RouteTenantNote:
		d.Action, d.Reason = ActionRewrite, "tenant host"

	case RouteAuthPage:
		switch {
		case !hasCookie:
			d.Action, d.Reason = ActionAllow, "no session"
		case mode == ModePresence:
			d.Action, d.Location, d.Reason = ActionRedirect, paths.Dashboard, "session present"
		case check == CheckValid:
			d.Action, d.Location, d.Reason = ActionRedirect, paths.Dashboard, "session valid"
		case check == CheckInvalid:
			d.Action, d.ClearCookie, d.Reason = ActionAllow, true, "stale session"
		default:
			d.Action, d.Reason = ActionAllow, "validation unavailable"
		}

	case RouteProtected:
		switch {
		case !hasCookie:
			d.Action, d.Location, d.ClearCookie, d.Reason = ActionRedirect, loginURL(paths.Login, returnTo), true, "no session"
		case mode == ModePresence:
			d.Action, d.Reason = ActionAllow, "session present"
		case check == CheckInvalid:
			d.Action, d.Location, d.ClearCookie, d.Reason = ActionRedirect, loginURL(paths.Login, returnTo), true, "session rejected"
		case check == CheckValid:
			d.Action, d.Reason = ActionAllow, "session valid"
		default:
			d.Action, d.Reason = ActionAllow, "validation unavailable"
		}

	default:
		d.Action, d.Reason = ActionAllow, "public"
	}

	return d
}

// NeedsCheck reports whether Decide's outcome for route depends on an
// upstream session check.
func NeedsCheck(route Route, hasCookie bool, mode Mode) bool {
	if !hasCookie || mode != ModeValidated {
		return false
	}
	return route == RouteAuthPage || route == RouteProtected
}

func loginURL(login, returnTo string) string {
	if !IsInternalPath(returnTo) {
		return login
	}
	return login + "?" + url.Values{ReturnURLParam: {returnTo}}.Encode()
}
