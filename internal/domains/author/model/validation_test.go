package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/shared/validator"
)

func takenNames(names ...string) NameChecker {
	return NameCheckerFunc(func(ctx context.Context, name string) (bool, error) {
		for _, n := range names {
			if n == name {
				return true, nil
			}
		}
		return false, nil
	})
}

func TestValidateName(t *testing.T) {
	checker := takenNames("Mary Shelley")

	tests := []struct {
		name   string
		reason string
	}{
		{"", "Author must have a name."},
		{"   ", "Author must have a name."},
		{"Mary Shelley", "Author name must be unique."},
		{"mary shelley", ""},
		{"Bram Stoker", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(context.Background(), tt.name, checker)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			vErr, ok := validator.AsError(err)
			require.True(t, ok)
			assert.Equal(t, FieldName, vErr.Field)
			assert.Equal(t, tt.reason, vErr.Reason)
		})
	}
}

func TestValidateName_BlankSkipsLookup(t *testing.T) {
	called := false
	checker := NameCheckerFunc(func(ctx context.Context, name string) (bool, error) {
		called = true
		return false, nil
	})

	require.Error(t, ValidateName(context.Background(), " ", checker))
	assert.False(t, called)
}

func TestValidateName_LookupError(t *testing.T) {
	boom := errors.New("timeout")
	checker := NameCheckerFunc(func(ctx context.Context, name string) (bool, error) {
		return false, boom
	})

	err := ValidateName(context.Background(), "Anyone", checker)
	assert.ErrorIs(t, err, boom)
	_, ok := validator.AsError(err)
	assert.False(t, ok)
}

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"5551234567", "0000000000", ""}
	invalid := []string{"555123456", "55512345678", "555 123 4567", "(555)1234567", "+15551234567", "abcdefghij", "５５５１２３４５６７", "٥٥٥١٢٣٤٥٦٧"}

	assert.NoError(t, ValidatePhoneNumber(nil))
	for _, p := range valid {
		p := p
		assert.NoError(t, ValidatePhoneNumber(&p), p)
	}
	for _, p := range invalid {
		p := p
		err := ValidatePhoneNumber(&p)
		require.Error(t, err, p)
		vErr, ok := validator.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "Phone number must be exactly 10 digits.", vErr.Reason)
	}
}

func TestAuthorString(t *testing.T) {
	a := Author{Name: "Ada"}
	assert.Equal(t, "Author(id=00000000-0000-0000-0000-000000000000, name=Ada)", a.String())
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, ToHTTPStatus(NameTakenError()))
	assert.Equal(t, 404, ToHTTPStatus(ErrAuthorNotFound))
	assert.Equal(t, 500, ToHTTPStatus(errors.New("x")))
	assert.Equal(t, "VALIDATION_ERROR", ToErrorCode(NameTakenError()))
}
