package webserver

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like a deliverable address
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validator adapts validator/v10 to echo.Validator and adds the shopemail tag
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("shopemail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FailedTags returns the validation tags that failed, in field order
func FailedTags(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		tags = append(tags, fe.Tag())
	}
	return tags
}
