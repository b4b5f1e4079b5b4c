// Package validation checks incoming request payloads before any side effect
// runs. Rules are declared as struct tags and evaluated by
// go-playground/validator; failures are translated into stable,
// field-attributed messages that are part of the public API contract, so the
// exact wording here must not change.
package validation

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Pattern sources referenced in failure messages.
const (
	PasswordPattern = `^[a-zA-Z0-9]{3,30}$`
	NamePattern     = `^[a-zA-Z]+ [a-zA-Z]+$`
	PhonePattern    = `^\(?(\d{3})\)?[- ]?(\d{3})[- ]?(\d{4})$`
)

var (
	passwordRegexp = regexp.MustCompile(PasswordPattern)
	nameRegexp     = regexp.MustCompile(NamePattern)
	phoneRegexp    = regexp.MustCompile(PhonePattern)
)

// Error is a validation failure attributed to a single payload field.
// Message text is stable and consumer-visible.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// credentials is the signup/login payload shape. Field order determines
// evaluation order.
type credentials struct {
	Email    string `field:"email" validate:"required,email"`
	Password string `field:"password" validate:"required,password_pattern"`
}

// contact is the contact create/update payload shape.
type contact struct {
	Name  string `field:"name" validate:"required,name_pattern"`
	Email string `field:"email" validate:"required,email"`
	Phone string `field:"phone" validate:"required,phone_pattern"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("field")
	})

	mustRegister(v, "password_pattern", passwordRegexp)
	mustRegister(v, "name_pattern", nameRegexp)
	mustRegister(v, "phone_pattern", phoneRegexp)

	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// patternSources maps custom rule tags to the pattern text embedded in
// failure messages.
var patternSources = map[string]string{
	"password_pattern": PasswordPattern,
	"name_pattern":     NamePattern,
	"phone_pattern":    PhonePattern,
}

// translate converts the first field error into a consumer-facing Error.
func translate(err error) *Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &Error{Message: err.Error()}
	}

	fe := errs[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return &Error{Field: field, Message: fmt.Sprintf("%q is required", field)}
	case "email":
		return &Error{Field: field, Message: fmt.Sprintf("%q must be a valid email", field)}
	default:
		pattern := patternSources[fe.Tag()]
		return &Error{
			Field:   field,
			Message: fmt.Sprintf("%q with value %q fails to match the required pattern: /%s/", field, fe.Value(), pattern),
		}
	}
}

// ValidateCredentials checks a signup/login payload. Checks run in order:
// presence of both fields, email syntactic validity, password pattern match.
// Returns nil on success.
func ValidateCredentials(email, password string) *Error {
	err := validate.Struct(credentials{Email: email, Password: password})
	if err != nil {
		return translate(err)
	}
	return nil
}

// ValidateContact checks a contact create/update payload.
func ValidateContact(name, email, phone string) *Error {
	err := validate.Struct(contact{Name: name, Email: email, Phone: phone})
	if err != nil {
		return translate(err)
	}
	return nil
}
