package validator

import (
	"testing"

	"bookstore/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_ValidStruct(t *testing.T) {
	err := Check(model.SignupRequest{
		Name:     "Buyer",
		Email:    "buyer@example.com",
		Password: "Buyer@123",
	})
	assert.NoError(t, err)
}

func TestCheck_ReturnsTranslatedMessage(t *testing.T) {
	err := Check(model.SignupRequest{Name: "Buyer", Password: "Buyer@123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "required")
}

func TestCheck_EmailFormat(t *testing.T) {
	err := Check(model.SigninRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestCheck_PasswordLength(t *testing.T) {
	err := Check(model.SignupRequest{
		Name:     "Buyer",
		Email:    "buyer@example.com",
		Password: "abc",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password")
}
