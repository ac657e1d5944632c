package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEBuildsFromArgs(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := E(Gateway, "Payment initiation failed", cause, Detail{Value: map[string]any{"code": "P1001"}})

	assert.Equal(t, Gateway, KindOf(err))
	assert.ErrorIs(t, err, GatewayInitiationFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, map[string]any{"code": "P1001"}, DetailOf(err))
	assert.Contains(t, err.Error(), "refused")
}

func TestKindOfPlainError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", errors.New("boom"))
	assert.Equal(t, Other, KindOf(err))
	assert.Equal(t, "Internal server error", MessageOf(err))
	assert.Equal(t, "wrapped: boom", DetailOf(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Invalid, 400},
		{NotFound, 404},
		{Unauthorized, 401},
		{Conflict, 409},
		{Gateway, 500},
		{Internal, 500},
		{Other, 500},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.kind))
		})
	}
}

func TestSentinelMatchesWrappedCopy(t *testing.T) {
	err := fmt.Errorf("initiate: %w", E(Invalid, "Invalid payment amount."))
	assert.ErrorIs(t, err, InvalidAmount)
	assert.NotErrorIs(t, err, CallbackProcessing)
}
