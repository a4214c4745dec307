package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"gte=1"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "player@example.com", Count: 3})
	assert.NoError(t, err)
}

func TestValidateStruct_UsesJSONFieldNames(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "not-an-email", Count: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "count")
}

func TestBindingErrorMessage_ValidationErrors(t *testing.T) {
	err := validate.Struct(sampleRequest{Email: "", Count: 1})
	require.Error(t, err)

	msg := BindingErrorMessage(err)
	assert.Contains(t, msg, "email is required")
}

func TestBindingErrorMessage_NonValidationError(t *testing.T) {
	msg := BindingErrorMessage(assert.AnError)
	assert.Equal(t, "invalid request body", msg)
}

func TestBindingErrorMessage_JoinsMultipleFields(t *testing.T) {
	err := validate.Struct(sampleRequest{Email: "nope", Count: 0})
	require.Error(t, err)

	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve, 2)

	msg := BindingErrorMessage(err)
	assert.Contains(t, msg, "; ")
}
