package secrets

import (
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/smithy-go"
)

// maxRetryBackoff caps the delay between two attempts.
const maxRetryBackoff = 30 * time.Second

// newRetryer builds the SDK standard retryer with maxAttempts attempts,
// including the first. It keeps the SDK's retryable classes (connection
// errors, throttling codes, 5xx responses) and also retries any API error
// that the service reports as a server fault.
//
//nolint:ireturn // the SDK config takes an aws.Retryer
func newRetryer(maxAttempts int) aws.Retryer {
	return retry.NewStandard(func(o *retry.StandardOptions) {
		o.MaxAttempts = maxAttempts
		o.MaxBackoff = maxRetryBackoff
		o.Retryables = append(append([]retry.IsErrorRetryable(nil), o.Retryables...),
			retry.IsErrorRetryableFunc(retryServerFault))
	})
}

// retryServerFault marks API errors with a server fault as retryable and
// leaves every other error to the SDK's own checks.
func retryServerFault(err error) aws.Ternary {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultServer {
		return aws.TrueTernary
	}
	return aws.UnknownTernary
}
