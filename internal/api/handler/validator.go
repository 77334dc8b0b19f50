package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// FieldViolation is one rejected request field, rendered as one entry of the
// error envelope.
type FieldViolation struct {
	Code    string
	Field   string
	Message string
}

// ValidationError carries every rejected field of a request body.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v        *validator.Validate
	settings ports.Settings
}

// NewValidator returns an echoValidator with the shop's field rules
// registered. Length limits come from settings.
func NewValidator(settings ports.Settings) *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	ev := &echoValidator{v: v, settings: settings}
	_ = v.RegisterValidation("login", ev.login)
	_ = v.RegisterValidation("password", ev.password)
	_ = v.RegisterValidation("rusname", ev.russianName(false))
	_ = v.RegisterValidation("optrusname", ev.russianName(true))
	_ = v.RegisterValidation("phone", phone)
	_ = v.RegisterValidation("name", ev.name)
	return ev
}

// Validate satisfies the echo.Validator interface. Slices are validated
// element by element.
func (ev *echoValidator) Validate(i any) error {
	var err error
	if rv := reflect.Indirect(reflect.ValueOf(i)); rv.Kind() == reflect.Slice {
		err = ev.v.Var(rv.Interface(), "dive")
	} else {
		err = ev.v.Struct(i)
	}
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{Violations: make([]FieldViolation, 0, len(ve))}
	for _, fe := range ve {
		out.Violations = append(out.Violations, FieldViolation{
			Code:    errorCode(fe.Tag()),
			Field:   fe.Field(),
			Message: ev.fieldError(fe),
		})
	}
	return out
}

func (ev *echoValidator) login(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || utf8.RuneCountInString(s) > ev.settings.MaxNameLength {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// name bounds catalog names to 1..MaxNameLength characters.
func (ev *echoValidator) name(fl validator.FieldLevel) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
	return n > 0 && n <= ev.settings.MaxNameLength
}

func (ev *echoValidator) password(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && utf8.RuneCountInString(s) >= ev.settings.MinPasswordLength
}

// russianName accepts Cyrillic letters, spaces and hyphens.
func (ev *echoValidator) russianName(optional bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return optional
		}
		if utf8.RuneCountInString(s) > ev.settings.MaxNameLength {
			return false
		}
		for _, r := range s {
			if r != ' ' && r != '-' && !unicode.Is(unicode.Cyrillic, r) {
				return false
			}
		}
		return true
	}
}

// phone accepts +7 or 8 followed by ten digits; hyphens are ignored.
func phone(fl validator.FieldLevel) bool {
	s := strings.ReplaceAll(fl.Field().String(), "-", "")
	switch {
	case strings.HasPrefix(s, "+7"):
		s = s[2:]
	case strings.HasPrefix(s, "8"):
		s = s[1:]
	default:
		return false
	}
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var codes = map[string]string{
	"login":      "Login",
	"password":   "Password",
	"rusname":    "RequiredRussianName",
	"optrusname": "OptionalRussianName",
	"phone":      "Phone",
	"name":       "Name",
	"email":      "Email",
	"required":   "Required",
	"gt":         "Range",
	"gte":        "Range",
	"min":        "Range",
}

func errorCode(tag string) string {
	if code, ok := codes[tag]; ok {
		return code
	}
	return "Invalid"
}

// fieldError converts a single ValidationError into a human-readable message.
func (ev *echoValidator) fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "login":
		return fmt.Sprintf("%s must be 1 to %d letters or digits", field, ev.settings.MaxNameLength)
	case "password":
		return fmt.Sprintf("%s must be at least %d characters", field, ev.settings.MinPasswordLength)
	case "rusname", "optrusname":
		return fmt.Sprintf("%s must be up to %d Russian letters, spaces or hyphens", field, ev.settings.MaxNameLength)
	case "phone":
		return field + " must be +7 or 8 followed by 10 digits"
	case "name":
		return fmt.Sprintf("%s must be 1 to %d characters", field, ev.settings.MaxNameLength)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
