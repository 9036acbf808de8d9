package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/validation"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
	Name     string `json:"name" validate:"max=255"`
}

func TestValidate_Passes(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{
		Email:    "cook@example.com",
		Password: "secret",
		Name:     "Cook",
	})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{
		Email:    "not-an-email",
		Password: "pw",
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok, "details should be a field error map")
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "must be at least 5 characters", details["password"])
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := validation.New()

	type req struct {
		TimeMinutes int `json:"time_minutes" validate:"gte=1"`
	}

	err := v.Validate(req{TimeMinutes: 0})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	details := appErr.Details.(map[string]string)
	assert.Contains(t, details, "time_minutes")
}

func TestValidate_MissingRequired(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	details := appErr.Details.(map[string]string)
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
}
