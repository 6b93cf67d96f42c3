package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationMessage(t *testing.T) {
	v := validator.New()

	type payload struct {
		Name   string `json:"name" validate:"required"`
		Shares int64  `json:"number_of_shares" validate:"gt=0"`
	}

	t.Run("renders one clause per failed field", func(t *testing.T) {
		err := v.Struct(payload{})
		require.Error(t, err)

		msg := ValidationMessage(err)
		assert.Contains(t, msg, "this field is required")
		assert.Contains(t, msg, "must be greater than 0")
	})

	t.Run("passes through non-validation errors", func(t *testing.T) {
		err := errors.New("unexpected EOF")
		assert.Equal(t, "unexpected EOF", ValidationMessage(err))
	})
}

func TestSetupValidator_UsesJSONTagNames(t *testing.T) {
	SetupValidator()

	type payload struct {
		CompanyNumber string `json:"company_number" binding:"required"`
	}

	err := binding.Validator.ValidateStruct(payload{})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "company_number")
}
