package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Field names a contact form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in declaration order. Focus after a blocked
// submit goes to the first invalid entry of this list.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

const (
	minNameLength    = 2
	minMessageLength = 10
)

const (
	NameError    = "Please enter your name (at least 2 characters)."
	EmailError   = "Please enter a valid email address."
	MessageError = "Please enter a message (at least 10 characters)."
)

var (
	ErrUnknownField = errors.New("contact: unknown field")
	ErrClosed       = errors.New("contact: controller closed")
)

// notSpace excludes the same whitespace set as ECMAScript \s; RE2's \s only
// covers ASCII.
const notSpace = `[^\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}@]`

var emailPattern = regexp.MustCompile(`^` + notSpace + `+@` + notSpace + `+\.` + notSpace + `+$`)

// ParseField maps a field name coming from the rendering layer to a Field.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !lo.Contains(Fields, f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// Values holds the current form inputs.
type Values struct {
	Name    string
	Email   string
	Message string
}

// Get returns the value of field f.
func (v Values) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldMessage:
		return v.Message
	}
	return ""
}

func (v *Values) set(f Field, value string) {
	switch f {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldMessage:
		v.Message = value
	}
}

// FieldErrors maps invalid fields to their message. A missing key means the
// field is currently valid.
type FieldErrors map[Field]string

// First returns the first invalid field in declaration order.
func (e FieldErrors) First() (Field, bool) {
	return lo.Find(Fields, func(f Field) bool {
		_, ok := e[f]
		return ok
	})
}

func (e FieldErrors) clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ValidateField checks value against the rule for f and returns the error
// message, or "" when the value is acceptable. Unknown fields are never
// reported as invalid.
func ValidateField(f Field, value string) string {
	trimmed := strings.TrimSpace(value)
	switch f {
	case FieldName:
		if utf8.RuneCountInString(trimmed) < minNameLength {
			return NameError
		}
	case FieldEmail:
		if !emailPattern.MatchString(trimmed) {
			return EmailError
		}
	case FieldMessage:
		if utf8.RuneCountInString(trimmed) < minMessageLength {
			return MessageError
		}
	}
	return ""
}

// ValidateAll applies every rule and returns entries for invalid fields only.
func ValidateAll(v Values) FieldErrors {
	errs := FieldErrors{}
	for _, f := range Fields {
		if msg := ValidateField(f, v.Get(f)); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}
