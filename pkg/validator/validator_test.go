package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsEmail("ada@example.com"))
	assert.True(t, v.IsEmail("first.last+tag@sub.example.org"))
	assert.False(t, v.IsEmail(""))
	assert.False(t, v.IsEmail("ada@"))
	assert.False(t, v.IsEmail("not an email"))
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
		Role  string `validate:"omitempty,oneof=patient doctor"`
		Years int    `validate:"gte=0"`
	}

	err := v.Validate(form{Email: "nope", Role: "nurse", Years: -1})
	require.Error(t, err)

	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "Name is required", msgs["Name"])
	assert.Equal(t, "Email must be a valid email address", msgs["Email"])
	assert.Equal(t, "Role must be one of: patient doctor", msgs["Role"])
	assert.Equal(t, "Years must be greater than or equal to 0", msgs["Years"])

	assert.NoError(t, v.Validate(form{Name: "x", Email: "x@example.com"}))
}

func TestFieldsReportedByJSONName(t *testing.T) {
	v := NewValidator()

	type form struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	}

	msgs := v.FormatValidationErrors(v.Validate(form{Password: "abc"}))
	assert.Equal(t, "email is required", msgs["email"])
	assert.Equal(t, "password must be at least 6 characters", msgs["password"])
}

func TestClock12(t *testing.T) {
	v := NewValidator()

	type shift struct {
		Start string `json:"start" validate:"omitempty,clock12"`
	}

	for _, ok := range []string{"", "7AM", "7.30AM", "12PM", "10.30PM", "12.30AM"} {
		assert.NoError(t, v.Validate(shift{Start: ok}), ok)
	}
	for _, bad := range []string{"0AM", "13PM", "9.15AM", "9am", "9:30AM", "noon"} {
		err := v.Validate(shift{Start: bad})
		require.Error(t, err, bad)
		assert.Equal(t, "start must be a half-hour time such as 9AM or 9.30AM", v.FormatValidationErrors(err)["start"])
	}
}
