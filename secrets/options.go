package secrets

import "log/slog"

// Option configures a pipeline stage.
type Option func(*stageOptions)

type stageOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by a stage. Only identifiers are logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *stageOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newStageOptions(opts []Option) *stageOptions {
	o := &stageOptions{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
