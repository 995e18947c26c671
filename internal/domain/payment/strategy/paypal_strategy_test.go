package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCaptureWithoutCredentials(t *testing.T) {
	// No configured client: the capture is recorded as client-asserted.
	s := &PayPalStrategy{}

	capture, err := s.VerifyCapture(context.Background(), "5O190127TN364715T")

	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", capture.OrderID)
	assert.False(t, capture.Verified)
	assert.Empty(t, capture.CaptureID)
}
