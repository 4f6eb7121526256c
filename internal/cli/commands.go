package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets"
)

func (a *app) newSecretValueCommand() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "secret-value <identifier>",
		Short: "Print the value of a secret, bypassing the cache",
		Example: `  aws-secrets secret-value myapp/db
  aws-secrets secret-value myapp/db --key password`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			// the raw fetcher never touches the cache; a zero TTL also keeps
			// the container from opening a cache backend
			cfg.TTL = 0

			c, err := a.container(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			value, err := c.Fetcher.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if key != "" {
				value, err = secrets.ExtractKey(value, key)
				if err != nil {
					return fmt.Errorf("secret %q: %w", args[0], err)
				}
			}

			_, err = fmt.Fprintln(a.stdout, value)
			return err
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "print only this key of a JSON secret")

	return cmd
}

func (a *app) newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <reference>...",
		Short: "Resolve references through the cache and ignore list",
		Example: `  aws-secrets resolve myapp/db,password
  aws-secrets resolve myapp/db,user myapp/db,password`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			c, err := a.container(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			for _, ref := range args {
				value, err := c.Processor.GetEnv(ctx, ref)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(a.stdout, value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with credentials masked",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(a.stdout)
			enc.SetIndent(2)
			if err := enc.Encode(cfg.Masked()); err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			return enc.Close()
		},
	}
}
