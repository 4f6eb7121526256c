//go:build integration

// Package secrets_test provides integration tests for the AWS Secrets Manager client.
// These tests use LocalStack via testcontainers to avoid external AWS dependencies.
//
// Run with:
//
//	go test -tags=integration -v ./...
//
// The integration tests require Docker to be running for LocalStack containers.
package secrets_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/localstack"

	secrets "github.com/input-output-hk/catalyst-forge-libs/awssecrets/services/aws/secrets"
)

var endpoint string

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := localstack.Run(ctx, "localstack/localstack:latest")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start LocalStack: %v\n", err)
		os.Exit(1)
	}

	port, _ := nat.NewPort("tcp", "4566")
	uri, err := container.PortEndpoint(ctx, port, "")
	if err != nil {
		_ = container.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get LocalStack endpoint: %v\n", err)
		os.Exit(1)
	}
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		uri = "http://" + uri
	}
	endpoint = uri

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate LocalStack: %v\n", err)
	}

	os.Exit(code)
}

func testConfig() secrets.Config {
	return secrets.Config{
		Region:          "us-east-1",
		Endpoint:        endpoint,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		MaxAttempts:     3,
		Timeout:         10 * time.Second,
	}
}

// seedSecret creates a secret directly through the SDK; Client is read-only.
func seedSecret(ctx context.Context, t *testing.T, name, value string) {
	t.Helper()

	api := secretsmanager.New(secretsmanager.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("test", "test", ""),
		BaseEndpoint: aws.String(endpoint),
	})
	_, err := api.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(name),
		SecretString: aws.String(value),
	})
	require.NoError(t, err)
}

func TestGetSecret_LocalStack(t *testing.T) {
	ctx := context.Background()

	client, err := secrets.NewClient(ctx, testConfig())
	require.NoError(t, err)

	name := fmt.Sprintf("app/db-%d", time.Now().UnixNano())
	payload := `{"username":"admin","password":"secret123"}`
	seedSecret(ctx, t, name, payload)

	t.Run("existing secret", func(t *testing.T) {
		value, err := client.GetSecret(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, payload, value)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := client.GetSecret(ctx, name+"-missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, secrets.ErrSecretNotFound)
	})
}
