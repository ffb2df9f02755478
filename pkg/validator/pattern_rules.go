package validator

import (
	"fmt"
	"regexp"
)

// Matches checks value against a precompiled pattern. description names the
// expected shape in the error message.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool { return re.MatchString(value) },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be %s", description),
		},
	}
}
