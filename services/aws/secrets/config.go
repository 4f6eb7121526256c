package secrets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Config is passed through to the AWS SDK when building a Client.
// Zero values leave the SDK defaults (environment, shared config, IMDS) in place.
type Config struct {
	// Region overrides the AWS region.
	Region string

	// Endpoint overrides the Secrets Manager endpoint, e.g. a LocalStack URL.
	Endpoint string

	// Profile selects a shared configuration profile.
	Profile string

	// MaxAttempts sets the attempts of the SDK standard retryer when > 0.
	MaxAttempts int

	// Timeout bounds each HTTP request to the service when > 0.
	Timeout time.Duration

	// AccessKeyID, SecretAccessKey and SessionToken configure static
	// credentials. Both AccessKeyID and SecretAccessKey must be set.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// loadAWSConfig resolves the SDK configuration for cfg.
func loadAWSConfig(ctx context.Context, cfg *Config, options *clientOptions) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	switch {
	case cfg.AccessKeyID != "" && cfg.SecretAccessKey != "":
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	case cfg.AccessKeyID != "" || cfg.SecretAccessKey != "":
		return aws.Config{}, fmt.Errorf("static credentials require both access key ID and secret access key")
	}

	retryer := options.retryer
	if retryer == nil && cfg.MaxAttempts > 0 {
		retryer = newRetryer(cfg.MaxAttempts)
	}
	if retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(func() aws.Retryer { return retryer }))
	}

	if cfg.Timeout > 0 {
		loadOpts = append(loadOpts, config.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return awsCfg, nil
}
