package planner

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// messages maps validator tags to human-readable suffixes. %s is replaced
// by the tag parameter.
var messages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gt":       "must be greater than %s",
	"gte":      "must not be negative",
}

// ValidationError lists every request field that failed validation.
type ValidationError struct {
	Fields []string
	err    error
}

func (e *ValidationError) Error() string {
	return "invalid plan request: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return e.err }

// Validate checks the range constraints of req.
func Validate(req Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		msg = strings.Replace(msg, "%s", fe.Param(), 1)
		fields = append(fields, strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Request."))+" "+msg)
	}
	return &ValidationError{Fields: fields, err: err}
}
