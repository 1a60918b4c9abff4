package shipper_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/aramexbridge/pkg/shipper"
)

func TestError_Error(t *testing.T) {
	err := shipper.NewError(shipper.ErrCarrierAPI, "aramex", "ERR01", "Invalid city")
	assert.Equal(t, "aramex carrier api error (ERR01): Invalid city", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := shipper.NewNetworkError("aramex", "request failed", cause)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := shipper.NewNetworkError("aramex", "request failed", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestError_IsKind(t *testing.T) {
	err := shipper.NewCarrierAPIError("aramex", "ERR01", []string{"bad"})
	wrapped := fmt.Errorf("rate: %w", err)

	assert.True(t, errors.Is(wrapped, shipper.ErrCarrierAPI))
	assert.False(t, errors.Is(wrapped, shipper.ErrNetwork))
}

func TestError_IsSameCode(t *testing.T) {
	err1 := shipper.NewError(shipper.ErrCarrierAPI, "aramex", "ERR01", "one")
	err2 := shipper.NewError(shipper.ErrCarrierAPI, "aramex", "ERR01", "two")
	err3 := shipper.NewError(shipper.ErrCarrierAPI, "aramex", "ERR02", "three")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestCarrierAPIError_JoinsMessages(t *testing.T) {
	err := shipper.NewCarrierAPIError("aramex", "ERR01", []string{"first", "second"})
	assert.Equal(t, "first; second", err.Message)
}

func TestError_WithStatusCode(t *testing.T) {
	err := shipper.NewNetworkError("aramex", "HTTP 503", nil).WithStatusCode(503)
	assert.Equal(t, 503, err.StatusCode)
}

func TestValidationError(t *testing.T) {
	err := &shipper.ValidationError{Problems: []string{"Shipper name is required", "Package description is required"}}

	assert.Equal(t, "Validation errors: Shipper name is required; Package description is required", err.Error())
	assert.True(t, errors.Is(err, shipper.ErrValidation))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", shipper.NewNetworkError("aramex", "timeout", nil), true},
		{"carrier api", shipper.NewCarrierAPIError("aramex", "ERR", []string{"bad"}), false},
		{"validation", &shipper.ValidationError{}, false},
		{"plain network sentinel", shipper.ErrNetwork, true},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shipper.IsRetryable(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Test error message",
		shipper.Message(shipper.NewCarrierAPIError("aramex", "001", []string{"Test error message"})))
	assert.Equal(t, "request failed: dial tcp: refused",
		shipper.Message(shipper.NewNetworkError("aramex", "request failed", errors.New("dial tcp: refused"))))
	assert.Equal(t, "boom", shipper.Message(errors.New("boom")))
}
