package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webnotes/notesweb/pkg/gate"
	"github.com/webnotes/notesweb/pkg/tenant"
)

func TestDefaultTable(t *testing.T) {
	t.Parallel()

	table := gate.DefaultTable(gate.DefaultExcludedPrefixes, []string{"/login", "/register"}, []string{"/dashboard", "/authorize-client"})
	main := tenant.Result{}
	alice := tenant.Result{Tenant: "alice", IsTenant: true}

	tests := []struct {
		name string
		in   gate.Input
		want gate.Route
	}{
		{"landing", gate.Input{Host: main, Path: "/"}, gate.RoutePublic},
		{"guide", gate.Input{Host: main, Path: "/user-guide"}, gate.RoutePublic},
		{"login", gate.Input{Host: main, Path: "/login"}, gate.RouteAuthPage},
		{"register subpath", gate.Input{Host: main, Path: "/register/confirm"}, gate.RouteAuthPage},
		{"dashboard", gate.Input{Host: main, Path: "/dashboard"}, gate.RouteProtected},
		{"dashboard section", gate.Input{Host: main, Path: "/dashboard/notes"}, gate.RouteProtected},
		{"authorize client", gate.Input{Host: main, Path: "/authorize-client"}, gate.RouteProtected},
		{"tenant root", gate.Input{Host: alice, Path: "/"}, gate.RouteTenantRoot},
		{"tenant note", gate.Input{Host: alice, Path: "/my-note"}, gate.RouteTenantNote},
		{"tenant beats auth prefix", gate.Input{Host: alice, Path: "/login"}, gate.RouteTenantNote},
		{"tenant beats protected prefix", gate.Input{Host: alice, Path: "/dashboard"}, gate.RouteTenantNote},
		{"api on tenant host", gate.Input{Host: alice, Path: "/api/releases/latest"}, gate.RoutePublic},
		{"healthz on tenant host", gate.Input{Host: alice, Path: "/healthz"}, gate.RoutePublic},
		{"metrics on main host", gate.Input{Host: main, Path: "/metrics"}, gate.RoutePublic},
		{"api-like slug stays a note", gate.Input{Host: alice, Path: "/apis-explained"}, gate.RouteTenantNote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, table.Classify(tt.in))
		})
	}
}

func TestTable_FirstMatchWins(t *testing.T) {
	t.Parallel()

	always := func(gate.Input) bool { return true }
	table := gate.Table{
		{Name: "first", Match: always, Route: gate.RouteProtected},
		{Name: "second", Match: always, Route: gate.RouteAuthPage},
	}
	assert.Equal(t, gate.RouteProtected, table.Classify(gate.Input{Path: "/"}))
	assert.Equal(t, gate.RoutePublic, gate.Table{}.Classify(gate.Input{Path: "/"}))
}
