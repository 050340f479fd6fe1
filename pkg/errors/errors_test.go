package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/agentstation/bankrot/pkg/errors"
)

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Field: "page_size", Message: "must be positive"}
		assert.Equal(t, "validation failed for field page_size: must be positive", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		status int
		target error
		want   bool
	}{
		{429, pkgerrors.ErrRateLimited, true},
		{403, pkgerrors.ErrBlocked, true},
		{451, pkgerrors.ErrBlocked, true},
		{502, pkgerrors.ErrUnavailable, true},
		{503, pkgerrors.ErrUnavailable, true},
		{404, pkgerrors.ErrNotFound, true},
		{400, pkgerrors.ErrUnavailable, false},
		{429, pkgerrors.ErrBlocked, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			err := pkgerrors.NewAPIError("fedresurs.ru", tt.status, "status")
			assert.Equal(t, tt.want, errors.Is(err, tt.target))
		})
	}
}

func TestClassifiers(t *testing.T) {
	wrapped := fmt.Errorf("get card: %w", pkgerrors.NewAPIError("fedresurs.ru", 429, "Too Many Requests"))
	assert.True(t, pkgerrors.IsRateLimited(wrapped))
	assert.False(t, pkgerrors.IsBlocked(wrapped))

	assert.True(t, pkgerrors.IsBlocked(pkgerrors.NewAPIError("h", 451, "")))
	assert.True(t, pkgerrors.IsUnavailable(pkgerrors.NewAPIError("h", 504, "")))
	assert.True(t, pkgerrors.IsNotFound(pkgerrors.NewAPIError("h", 404, "")))
	assert.False(t, pkgerrors.IsUnavailable(pkgerrors.WrapAPI("h", 0, errors.New("connection reset"))))
}

func TestAPIError_Retryable(t *testing.T) {
	for _, code := range []int{429, 403, 451, 502, 503, 504} {
		assert.True(t, pkgerrors.NewAPIError("h", code, "").Retryable(), "status %d", code)
		assert.True(t, pkgerrors.IsRetryableStatus(code))
	}
	for _, code := range []int{400, 401, 404, 500} {
		assert.False(t, pkgerrors.NewAPIError("h", code, "").Retryable(), "status %d", code)
	}

	network := pkgerrors.WrapAPI("h", 0, errors.New("connection reset"))
	var apiErr *pkgerrors.APIError
	assert.True(t, errors.As(network, &apiErr))
	assert.True(t, apiErr.Retryable())
	assert.Contains(t, network.Error(), "connection reset")
}

func TestWrapHelpers(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapIO("write", "out.xlsx", nil))
	assert.Nil(t, pkgerrors.WrapParse("json", "body", nil))
	assert.Nil(t, pkgerrors.WrapResource("save", "workbook", "", nil))

	base := errors.New("disk full")
	err := pkgerrors.WrapIO("write", "out.xlsx", base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "IO error during write of out.xlsx: disk full", err.Error())

	err = pkgerrors.WrapResource("save", "workbook", "out.xlsx", base)
	assert.Equal(t, "failed to save workbook out.xlsx: disk full", err.Error())

	err = pkgerrors.WrapParse("json", "/backend/companies/g1", base)
	assert.Equal(t, "parse error in json from /backend/companies/g1: disk full", err.Error())
}
