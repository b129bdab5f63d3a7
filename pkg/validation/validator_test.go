package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordPayload struct {
	Password string `json:"password" binding:"required,strongpwd"`
}

func engine(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestStrongPasswordPolicy(t *testing.T) {
	v := engine(t)

	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all classes present", "Abcdef1!", true},
		{"symbols from allowed set", "Passw0rd$", true},
		{"too short", "Ab1!", false},
		{"too long", "Abcdefgh1!Abcdefgh1!x", false},
		{"missing digit", "Abcdefg!", false},
		{"missing uppercase", "abcdefg1!", false},
		{"missing lowercase", "ABCDEFG1!", false},
		{"missing symbol", "Abcdefg1", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(passwordPayload{Password: tc.password})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	v := engine(t)

	err := v.Struct(passwordPayload{Password: "weak"})
	require.Error(t, err)

	details := ToDetails(err)
	require.Contains(t, details, "password")
	assert.NotEmpty(t, details["password"])
}

func TestToDetailsNilError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
