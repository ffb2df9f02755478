// Package environment names the deployment stage the process runs in.
package environment

import "strings"

// Environment is a deployment stage.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps an APP_ENV value, including the short aliases, to an Environment.
// Unknown values resolve to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) String() string { return string(e) }

// IsProduction reports whether e is the production stage.
func (e Environment) IsProduction() bool { return e == Production }

// IsDevelopment reports whether e is the development stage.
func (e Environment) IsDevelopment() bool { return e == Development }
