package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"oneof":       "{field} must be one of {param}",
	"datetime":    "{field} must use the {param} format",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"max":         "{field} must be less than or equal to {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not be larger than {param} MB",
	"guest_email": "Please enter a valid email address",
	"guest_phone": "Please enter a valid phone number",
}

// message turns the first failed rule into the sentence returned to the client.
func message(err error) string {
	var failed val.ValidationErrors
	if !errors.As(err, &failed) || len(failed) == 0 {
		return err.Error()
	}

	first := failed[0]

	template, ok := messages[first.Tag()]
	if !ok {
		template = "{field} is invalid"
	}

	return strings.NewReplacer("{field}", first.Field(), "{param}", first.Param()).Replace(template)
}
