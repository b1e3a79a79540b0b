package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment_ValidInput(t *testing.T) {
	p, err := NewPayment(100, 5000000, "UZS", "provider-token", "charge-abc")

	require.NoError(t, err)
	assert.Equal(t, int64(100), p.UserID())
	assert.Equal(t, int64(5000000), p.Amount())
	assert.Equal(t, "UZS", p.Currency())
	assert.Equal(t, "charge-abc", p.ChargeID())
	assert.False(t, p.CreatedAt().IsZero())
}

func TestNewPayment_Invalid(t *testing.T) {
	_, err := NewPayment(0, 100, "UZS", "p", "c")
	assert.Error(t, err, "zero user")

	_, err = NewPayment(100, 0, "UZS", "p", "c")
	assert.Error(t, err, "zero amount")

	_, err = NewPayment(100, 100, "", "p", "c")
	assert.Error(t, err, "empty currency")

	_, err = NewPayment(100, 100, "UZS", "p", "")
	assert.Error(t, err, "empty charge ID")
}

func TestReconstructPayment(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	p, err := ReconstructPayment(9, 100, 5000000, "UZS", "provider-token", "charge-abc", created)

	require.NoError(t, err)
	assert.Equal(t, uint(9), p.ID())
	assert.Equal(t, created, p.CreatedAt())
}

func TestPayment_SetID(t *testing.T) {
	p, err := NewPayment(100, 5000000, "UZS", "p", "charge-abc")
	require.NoError(t, err)

	require.NoError(t, p.SetID(5))
	assert.Error(t, p.SetID(6))
}
