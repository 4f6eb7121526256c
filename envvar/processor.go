package envvar

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets"
)

// Prefix is the placeholder prefix handled by the processor, as in ${aws:REF}.
const Prefix = "aws"

var placeholderPattern = regexp.MustCompile(`\$\{` + Prefix + `:([^}]+)\}`)

// Resolver resolves a full reference, identifier and optional key.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Option configures a Processor.
type Option func(*Processor)

// WithIgnore adds identifiers whose failures resolve to the empty string.
func WithIgnore(ids ...string) Option {
	return func(p *Processor) {
		for _, id := range ids {
			p.ignore[id] = struct{}{}
		}
	}
}

// WithDelimiter sets the delimiter used to find a reference's identifier
// when matching the ignore set. It must match the resolver's delimiter.
func WithDelimiter(delimiter string) Option {
	return func(p *Processor) {
		if delimiter != "" {
			p.delimiter = delimiter
		}
	}
}

// WithLogger sets the logger. Only references are logged, never values.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Processor resolves secret references for a host's configuration.
//
// Results, including ignored failures, are memoized per reference for the
// life of the processor. Concurrent first calls for the same reference may
// both reach the resolver.
type Processor struct {
	resolver  Resolver
	ignore    map[string]struct{}
	delimiter string
	logger    *slog.Logger

	mu   sync.RWMutex
	memo map[string]string
}

// NewProcessor creates a processor on top of resolver.
func NewProcessor(resolver Resolver, opts ...Option) *Processor {
	p := &Processor{
		resolver:  resolver,
		ignore:    make(map[string]struct{}),
		delimiter: secrets.DefaultDelimiter,
		logger:    slog.New(slog.DiscardHandler),
		memo:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prefix returns the placeholder prefix the processor handles.
func (p *Processor) Prefix() string {
	return Prefix
}

// Ignored reports whether id is in the ignore set.
func (p *Processor) Ignored(id string) bool {
	_, ok := p.ignore[id]
	return ok
}

// GetEnv resolves name, a reference of the form "id" or "id<delimiter>key".
//
// On failure, an ignored identifier yields "" and a nil error; any other
// identifier, or a malformed reference, yields a *ConfigurationError.
func (p *Processor) GetEnv(ctx context.Context, name string) (string, error) {
	p.mu.RLock()
	value, ok := p.memo[name]
	p.mu.RUnlock()
	if ok {
		return value, nil
	}

	value, err := p.resolver.Resolve(ctx, name)
	if err != nil {
		id, _, _ := strings.Cut(name, p.delimiter)
		if errors.Is(err, secrets.ErrInvalidReference) || !p.Ignored(id) {
			p.logger.DebugContext(ctx, "secret resolution failed",
				"reference", name,
				"error", err)
			return "", &ConfigurationError{Name: name, Err: err}
		}

		p.logger.WarnContext(ctx, "ignoring unresolvable secret",
			"reference", name,
			"error", err)
		value = ""
	}

	p.mu.Lock()
	p.memo[name] = value
	p.mu.Unlock()

	return value, nil
}

// Expand replaces every ${aws:REF} placeholder in s with the resolved value.
// It stops at the first fatal error.
func (p *Processor) Expand(ctx context.Context, s string) (string, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		value, err := p.GetEnv(ctx, s[m[2]:m[3]])
		if err != nil {
			return "", err
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(value)
		last = m[1]
	}
	b.WriteString(s[last:])

	return b.String(), nil
}

// ExpandEnv expands placeholders in the values of a KEY=VALUE list, such as
// os.Environ(). Entries without placeholders are returned unchanged.
func (p *Processor) ExpandEnv(ctx context.Context, environ []string) ([]string, error) {
	out := make([]string, 0, len(environ))
	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			out = append(out, kv)
			continue
		}

		expanded, err := p.Expand(ctx, value)
		if err != nil {
			return nil, err
		}
		out = append(out, key+"="+expanded)
	}
	return out, nil
}

// Reset forgets memoized results.
func (p *Processor) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.memo)
}
