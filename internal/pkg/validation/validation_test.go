package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationForm struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
	Rating    int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	fields := Struct(&registrationForm{
		Email:     "user@example.com",
		Password:  "longenough",
		Password2: "longenough",
		Rating:    3,
	})
	assert.Nil(t, fields)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	t.Parallel()

	fields := Struct(&registrationForm{})
	require.NotNil(t, fields)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "password2")
	assert.Equal(t, "This field is required", fields["email"])
}

func TestStruct_PasswordMismatch(t *testing.T) {
	t.Parallel()

	fields := Struct(&registrationForm{
		Email:     "user@example.com",
		Password:  "longenough",
		Password2: "different1",
	})
	require.NotNil(t, fields)
	assert.Equal(t, "The two password fields didn't match", fields["password2"])
}

func TestStruct_BoundMessages(t *testing.T) {
	t.Parallel()

	fields := Struct(&registrationForm{
		Email:     "not-an-email",
		Password:  "short",
		Password2: "short",
		Rating:    9,
	})
	require.NotNil(t, fields)
	assert.Equal(t, "Must be a valid email address", fields["email"])
	assert.Equal(t, "Must be at least 8 characters", fields["password"])
	assert.Equal(t, "Must be less than or equal to 5", fields["rating"])
}
