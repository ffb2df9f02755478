package auth

import (
	"strings"

	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/validator"
)

// ValidateRegistration checks a sign-up before it reaches the backend. The
// username becomes the profile subdomain, so it has to be a DNS label.
// Failures are validator.ValidationErrors keyed by form field.
func ValidateRegistration(reg backend.Registration) error {
	email := strings.TrimSpace(reg.Email)
	username := strings.TrimSpace(reg.Username)
	return validator.Apply(
		validator.Required("email", email),
		validator.ValidEmail("email", email),
		validator.Required("username", username),
		validator.MinLen("username", username, MinUsernameLength),
		validator.ValidSubdomain("username", username),
		validator.Required("password", reg.Password),
	)
}
