// Package cli implements the aws-secrets command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/bootstrap"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/config"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
)

// DefaultConfigFile is read from the home directory when --config is not set.
const DefaultConfigFile = ".aws-secrets.yaml"

// app carries state shared by the commands of one invocation.
type app struct {
	configPath string
	logLevel   string

	stdout io.Writer
	stderr io.Writer

	// extra is appended to the options of every container, for tests.
	extra []bootstrap.Option

	logger *slog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand(stdout, stderr io.Writer, opts ...bootstrap.Option) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		extra:  opts,
	}

	root := &cobra.Command{
		Use:   "aws-secrets",
		Short: "Resolve secrets stored in AWS Secrets Manager",
		Long: `aws-secrets resolves secret references against AWS Secrets Manager.

A reference is IDENTIFIER or IDENTIFIER<delimiter>KEY, where KEY selects a
field of a JSON secret. Configuration is read from --config and from
AWS_SECRETS_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.initLogger()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"path to a YAML configuration file (default is $HOME/"+DefaultConfigFile+" when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.newSecretValueCommand(),
		a.newResolveCommand(),
		a.newConfigCommand(),
	)

	return root
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...bootstrap.Option) int {
	root := NewRootCommand(stdout, stderr, opts...)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return 0
}

// ExitCode maps an error to a process exit code. Errors without a code,
// such as cobra's argument errors, exit with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return ferrors.CodeOf(err).ExitCode()
}

func (a *app) initLogger() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("%w: --log-level %q", errInvalidFlag, a.logLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

var errInvalidFlag = ferrors.New(ferrors.CodeInvalidInput, "invalid flag value")

func (a *app) loadConfig() (*config.Config, error) {
	path, err := a.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return config.LoadWith(viper.New(), path)
}

// resolveConfigPath expands a leading ~ in --config, or falls back to the
// default file in the home directory when it exists.
func (a *app) resolveConfigPath() (string, error) {
	if a.configPath != "" {
		path, err := homedir.Expand(a.configPath)
		if err != nil {
			return "", fmt.Errorf("%w: --config %q: %w", errInvalidFlag, a.configPath, err)
		}
		return path, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", nil //nolint:nilerr // without a home directory there is no default file
	}
	path := filepath.Join(home, DefaultConfigFile)
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func (a *app) container(ctx context.Context, cfg *config.Config) (*bootstrap.Container, error) {
	opts := append([]bootstrap.Option{bootstrap.WithLogger(a.logger)}, a.extra...)
	return bootstrap.New(ctx, cfg, opts...)
}
