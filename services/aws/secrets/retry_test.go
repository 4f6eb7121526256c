package secrets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetryer_MaxAttempts(t *testing.T) {
	for _, attempts := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("%d attempts", attempts), func(t *testing.T) {
			assert.Equal(t, attempts, newRetryer(attempts).MaxAttempts())
		})
	}
}

func TestNewRetryer_IsErrorRetryable(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "connection refused", err: dialErr, want: true},
		{name: "wrapped connection error", err: fmt.Errorf("GetSecretValue: %w", dialErr), want: true},
		{
			name: "server fault",
			err:  &smithy.GenericAPIError{Code: "InternalServiceError", Fault: smithy.FaultServer},
			want: true,
		},
		{name: "throttling", err: &smithy.GenericAPIError{Code: "ThrottlingException"}, want: true},
		{name: "request limit", err: &smithy.GenericAPIError{Code: "RequestLimitExceeded"}, want: true},
		{
			name: "secret not found",
			err:  &smithy.GenericAPIError{Code: ResourceNotFoundException, Fault: smithy.FaultClient},
			want: false,
		},
		{
			name: "access denied",
			err:  &smithy.GenericAPIError{Code: AccessDeniedException, Fault: smithy.FaultClient},
			want: false,
		},
		{name: "cancelled", err: context.Canceled, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	retryer := newRetryer(5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryer.IsErrorRetryable(tt.err))
		})
	}
}

func TestNewRetryer_BackoffCapped(t *testing.T) {
	retryer := newRetryer(20)
	err := &smithy.GenericAPIError{Code: "ThrottlingException"}

	for attempt := 1; attempt <= 20; attempt++ {
		delay, delayErr := retryer.RetryDelay(attempt, err)
		require.NoError(t, delayErr)
		assert.LessOrEqual(t, delay, maxRetryBackoff)
		assert.GreaterOrEqual(t, delay, time.Duration(0))
	}
}
