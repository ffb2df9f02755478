package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webnotes/notesweb/pkg/gate"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	paths := gate.Paths{Login: "/login", Dashboard: "/dashboard"}
	const back = "/dashboard/notes?tab=2"
	loginBack := "/login?returnUrl=%2Fdashboard%2Fnotes%3Ftab%3D2"

	tests := []struct {
		name      string
		route     gate.Route
		hasCookie bool
		mode      gate.Mode
		check     gate.Check
		want      gate.Decision
	}{
		{
			name: "public passes", route: gate.RoutePublic, mode: gate.ModeValidated, check: gate.CheckSkipped,
			want: gate.Decision{Action: gate.ActionAllow},
		},
		{
			name: "tenant rewrites", route: gate.RouteTenantNote, hasCookie: true, mode: gate.ModeValidated, check: gate.CheckSkipped,
			want: gate.Decision{Action: gate.ActionRewrite},
		},
		{
			name: "auth page without cookie", route: gate.RouteAuthPage, mode: gate.ModeValidated, check: gate.CheckSkipped,
			want: gate.Decision{Action: gate.ActionAllow},
		},
		{
			name: "auth page with valid session", route: gate.RouteAuthPage, hasCookie: true, mode: gate.ModeValidated, check: gate.CheckValid,
			want: gate.Decision{Action: gate.ActionRedirect, Location: "/dashboard"},
		},
		{
			name: "auth page with rejected session", route: gate.RouteAuthPage, hasCookie: true, mode: gate.ModeValidated, check: gate.CheckInvalid,
			want: gate.Decision{Action: gate.ActionAllow, ClearCookie: true},
		},
		{
			name: "auth page fails open", route: gate.RouteAuthPage, hasCookie: true, mode: gate.ModeValidated, check: gate.CheckUnavailable,
			want: gate.Decision{Action: gate.ActionAllow},
		},
		{
			name: "auth page presence mode", route: gate.RouteAuthPage, hasCookie: true, mode: gate.ModePresence, check: gate.CheckSkipped,
			want: gate.Decision{Action: gate.ActionRedirect, Location: "/dashboard"},
		},
		{
			name: "protected without cookie", route: gate.RouteProtected, mode: gate.ModeValidated, check: gate.CheckSkipped,
			want: gate.Decision{Action: gate.ActionRedirect, Location: loginBack, ClearCookie: true},
		},
		{
			name: "protected without cookie presence mode", route: gate.RouteProtected, mode: gate.ModePresence, check: gate.CheckSkipped,
			want: gate.Decision{Action: gate.ActionRedirect, Location: loginBack, ClearCookie: true},
		},
		{
			name: "protected with valid session", route: gate.RouteProtected, hasCookie: true, mode: gate.ModeValidated, check: gate.CheckValid,
			want: gate.Decision{Action: gate.ActionAllow},
		},
		{
			name: "protected with rejected session", route: gate.RouteProtected, hasCookie: true, mode: gate.ModeValidated, check: gate.CheckInvalid,
			want: gate.Decision{Action: gate.ActionRedirect, Location: loginBack, ClearCookie: true},
		},
		{
			name: "protected fails open", route: gate.RouteProtected, hasCookie: true, mode: gate.ModeValidated, check: gate.CheckUnavailable,
			want: gate.Decision{Action: gate.ActionAllow},
		},
		{
			name: "protected presence mode", route: gate.RouteProtected, hasCookie: true, mode: gate.ModePresence, check: gate.CheckSkipped,
			want: gate.Decision{Action: gate.ActionAllow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := gate.Decide(tt.route, tt.hasCookie, tt.mode, tt.check, paths, back)

			assert.Equal(t, tt.route, got.Route)
			assert.Equal(t, tt.check, got.Check)
			assert.Equal(t, tt.want.Action, got.Action)
			assert.Equal(t, tt.want.Location, got.Location)
			assert.Equal(t, tt.want.ClearCookie, got.ClearCookie)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestDecide_ExternalReturnIgnored(t *testing.T) {
	t.Parallel()

	got := gate.Decide(gate.RouteProtected, false, gate.ModeValidated, gate.CheckSkipped,
		gate.Paths{Login: "/login"}, "//evil.example.com/x")
	assert.Equal(t, "/login", got.Location)
}

func TestNeedsCheck(t *testing.T) {
	t.Parallel()

	assert.True(t, gate.NeedsCheck(gate.RouteProtected, true, gate.ModeValidated))
	assert.True(t, gate.NeedsCheck(gate.RouteAuthPage, true, gate.ModeValidated))
	assert.False(t, gate.NeedsCheck(gate.RouteProtected, false, gate.ModeValidated))
	assert.False(t, gate.NeedsCheck(gate.RouteProtected, true, gate.ModePresence))
	assert.False(t, gate.NeedsCheck(gate.RoutePublic, true, gate.ModeValidated))
	assert.False(t, gate.NeedsCheck(gate.RouteTenantRoot, true, gate.ModeValidated))
}
