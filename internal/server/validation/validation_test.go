package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials_OK(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ValidateCredentials("test@gmail.com", "test"))
	assert.Nil(t, ValidateCredentials("Admin@gmail.com", "Admin"))
	assert.Nil(t, ValidateCredentials("a@b.co", "abc"))
}

func TestValidateCredentials_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		field    string
		message  string
	}{
		{
			name:     "email without at sign",
			email:    "tsjad.com.pl",
			password: "test",
			field:    "email",
			message:  `"email" must be a valid email`,
		},
		{
			name:     "password too short",
			email:    "test1@gmail.com",
			password: "t",
			field:    "password",
			message:  `"password" with value "t" fails to match the required pattern: /^[a-zA-Z0-9]{3,30}$/`,
		},
		{
			name:     "password with forbidden chars",
			email:    "test@gmail.com",
			password: "pa$$word",
			field:    "password",
			message:  `"password" with value "pa$$word" fails to match the required pattern: /^[a-zA-Z0-9]{3,30}$/`,
		},
		{
			name:     "missing email",
			email:    "",
			password: "test",
			field:    "email",
			message:  `"email" is required`,
		},
		{
			name:     "missing password",
			email:    "test@gmail.com",
			password: "",
			field:    "password",
			message:  `"password" is required`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verr := ValidateCredentials(tc.email, tc.password)
			require.NotNil(t, verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.message, verr.Message)
			assert.Equal(t, tc.message, verr.Error())
		})
	}
}

func TestValidateCredentials_EmailCheckedBeforePassword(t *testing.T) {
	t.Parallel()

	// both fields invalid: the email failure must win
	verr := ValidateCredentials("nope", "!")
	require.NotNil(t, verr)
	assert.Equal(t, "email", verr.Field)
}

func TestValidateContact(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ValidateContact("John Doe", "john@example.com", "(123) 456-7890"))
	assert.Nil(t, ValidateContact("Jane Roe", "jane@example.com", "123-456-7890"))

	verr := ValidateContact("John", "john@example.com", "123-456-7890")
	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, `"name" with value "John" fails to match the required pattern: /^[a-zA-Z]+ [a-zA-Z]+$/`, verr.Message)

	verr = ValidateContact("John Doe", "john@example.com", "12-34")
	require.NotNil(t, verr)
	assert.Equal(t, "phone", verr.Field)

	verr = ValidateContact("John Doe", "", "123-456-7890")
	require.NotNil(t, verr)
	assert.Equal(t, `"email" is required`, verr.Message)
}
