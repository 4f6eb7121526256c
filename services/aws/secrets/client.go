package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

// AWS error code constants
const (
	ResourceNotFoundException = "ResourceNotFoundException"
	AccessDeniedException     = "AccessDeniedException"
	DecryptionFailure         = "DecryptionFailure"
)

// Client fetches raw secret payloads from AWS Secrets Manager.
//
// Thread Safety: the api field is immutable and AWS SDK v2 clients are
// thread-safe; slog.Logger is thread-safe. All methods may be called
// concurrently.
type Client struct {
	// api is the underlying AWS Secrets Manager client
	api ManagerAPI

	// logger is used for structured logging of operations; nil disables logging
	logger *slog.Logger
}

// NewClient creates a client from cfg, loading the remaining AWS settings from
// the default credential chain.
//
// Example usage:
//
//	client, err := NewClient(ctx, Config{Region: "eu-west-1", MaxAttempts: 5},
//	    WithLogger(slog.Default()),
//	)
func NewClient(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	options := defaultOptions()
	applyOptions(options, opts)

	awsCfg, err := loadAWSConfig(ctx, &cfg, options)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	api := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &Client{
		api:    api,
		logger: options.logger,
	}, nil
}

// NewClientWithAPI creates a client around an existing ManagerAPI
// implementation, typically a fake in tests.
func NewClientWithAPI(api ManagerAPI, opts ...Option) (*Client, error) {
	if api == nil {
		return nil, fmt.Errorf("api cannot be nil")
	}

	options := defaultOptions()
	applyOptions(options, opts)

	return &Client{
		api:    api,
		logger: options.logger,
	}, nil
}

// handleError maps an SDK error to one of the package errors and adds the
// operation and secret name as context.
func (c *Client) handleError(err error, operation, secretName string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrSecretNotFound) ||
		errors.Is(err, ErrSecretEmpty) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrTransient) {
		return fmt.Errorf("%s %q: %w", operation, secretName, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case ResourceNotFoundException:
			return fmt.Errorf("%s %q: %w", operation, secretName, ErrSecretNotFound)
		case AccessDeniedException, DecryptionFailure:
			return fmt.Errorf("%s %q: %w", operation, secretName, ErrAccessDenied)
		}
		return fmt.Errorf("%s %q: %w: %s: %s",
			operation, secretName, ErrTransient, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}

	return fmt.Errorf("%s %q: %w: %w", operation, secretName, ErrTransient, err)
}

// GetSecret retrieves the raw value of a secret.
//
// String secrets are returned as-is; binary secrets are returned as their
// bytes converted to a string. Failures wrap ErrSecretNotFound,
// ErrAccessDenied, ErrSecretEmpty or ErrTransient.
func (c *Client) GetSecret(ctx context.Context, secretName string) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("context cannot be nil")
	}
	if secretName == "" {
		return "", fmt.Errorf("secret name cannot be empty")
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "retrieving secret",
			"secret_name", secretName)
	}

	output, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		mapped := c.handleError(err, "GetSecret", secretName)
		if c.logger != nil {
			c.logger.DebugContext(ctx, "failed to retrieve secret",
				"secret_name", secretName,
				"error", mapped)
		}
		return "", mapped
	}

	var secretValue string
	switch {
	case output.SecretString != nil:
		secretValue = *output.SecretString
	case output.SecretBinary != nil:
		secretValue = string(output.SecretBinary)
	default:
		return "", c.handleError(ErrSecretEmpty, "GetSecret", secretName)
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "secret retrieved successfully",
			"secret_name", secretName)
	}

	return secretValue, nil
}
