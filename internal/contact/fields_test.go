package contact_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/contact"
)

func TestValidateField_Name(t *testing.T) {
	valid := []string{"Sam", "Al", "  Jo  ", "Zoë", "名前"}
	for _, s := range valid {
		require.Empty(t, contact.ValidateField(contact.FieldName, s), "name %q", s)
	}
	invalid := []string{"", " ", "A", "  B  ", "\t\n"}
	for _, s := range invalid {
		require.Equal(t, contact.NameError, contact.ValidateField(contact.FieldName, s), "name %q", s)
	}
}

func TestValidateField_Email(t *testing.T) {
	valid := []string{"a@b.co", "sam@example.com", "  sam@example.com  ", "first.last@sub.domain.org"}
	for _, s := range valid {
		require.Empty(t, contact.ValidateField(contact.FieldEmail, s), "email %q", s)
	}
	invalid := []string{"", "not-an-email", "x", "a@b", "a b@c.d", "a@@b.c", "@b.co", "a@.co", "a@b.", "sam@exa mple.com",
		"a\u00a0b@c.de", "a@b\u2003c.de", "a\vb@c.de", "a@b.c\u3000d", "a\ufeffb@c.de", "a@b\u2028c.de"}
	for _, s := range invalid {
		require.Equal(t, contact.EmailError, contact.ValidateField(contact.FieldEmail, s), "email %q", s)
	}
}

func TestValidateField_Message(t *testing.T) {
	require.Empty(t, contact.ValidateField(contact.FieldMessage, "1234567890"))
	require.Empty(t, contact.ValidateField(contact.FieldMessage, "  1234567890  "))
	require.Equal(t, contact.MessageError, contact.ValidateField(contact.FieldMessage, "short"))
	require.Equal(t, contact.MessageError, contact.ValidateField(contact.FieldMessage, "123456789"))
	require.Equal(t, contact.MessageError, contact.ValidateField(contact.FieldMessage, "   123456789   "))
	require.Equal(t, contact.MessageError, contact.ValidateField(contact.FieldMessage, ""))
}

func TestValidateAll(t *testing.T) {
	tests := []struct {
		name   string
		values contact.Values
		want   contact.FieldErrors
	}{
		{
			name:   "all empty",
			values: contact.Values{},
			want: contact.FieldErrors{
				contact.FieldName:    contact.NameError,
				contact.FieldEmail:   contact.EmailError,
				contact.FieldMessage: contact.MessageError,
			},
		},
		{
			name:   "all valid",
			values: contact.Values{Name: "Sam", Email: "sam@example.com", Message: "Hello there, how are you?"},
			want:   contact.FieldErrors{},
		},
		{
			name:   "only email invalid",
			values: contact.Values{Name: "Sam", Email: "sam", Message: "Hello there, how are you?"},
			want:   contact.FieldErrors{contact.FieldEmail: contact.EmailError},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, contact.ValidateAll(tt.values)); diff != "" {
				t.Fatalf("ValidateAll mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldErrors_First(t *testing.T) {
	_, ok := contact.FieldErrors{}.First()
	require.False(t, ok)

	f, ok := contact.FieldErrors{contact.FieldMessage: "m", contact.FieldEmail: "e"}.First()
	require.True(t, ok)
	require.Equal(t, contact.FieldEmail, f)
}

func TestParseField(t *testing.T) {
	f, err := contact.ParseField("message")
	require.NoError(t, err)
	require.Equal(t, contact.FieldMessage, f)

	_, err = contact.ParseField("phone")
	require.ErrorIs(t, err, contact.ErrUnknownField)
}
