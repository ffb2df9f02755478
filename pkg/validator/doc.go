// Package validator builds input checks out of small Rule values.
//
// A rule pairs a boolean Check with the error reported when it fails.
// Apply runs rules in order and aggregates the failures into
// ValidationErrors, keeping the first failure per field so a form shows one
// message per input:
//
//	err := validator.Apply(
//	    validator.Required("email", email),
//	    validator.ValidEmail("email", email),
//	    validator.ValidSubdomain("username", username),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    fields := verrs.Values()
//	}
package validator
