package secrets

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StructuredProvider resolves references of the form "id" or
// "id<delimiter>key". The identifier is resolved through the next provider;
// when a key is present the payload is decoded as a JSON object and the
// key's value is returned.
type StructuredProvider struct {
	next      Provider
	delimiter string
	logger    *slog.Logger
}

// NewStructuredProvider wraps next with reference parsing and key extraction.
// An empty delimiter selects DefaultDelimiter.
func NewStructuredProvider(next Provider, delimiter string, opts ...Option) *StructuredProvider {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	o := newStageOptions(opts)
	return &StructuredProvider{
		next:      next,
		delimiter: delimiter,
		logger:    o.logger,
	}
}

// Structured returns a Decorator that applies NewStructuredProvider.
func Structured(delimiter string, opts ...Option) Decorator {
	return func(next Provider) Provider {
		return NewStructuredProvider(next, delimiter, opts...)
	}
}

// Delimiter returns the separator between identifier and key.
func (p *StructuredProvider) Delimiter() string {
	return p.delimiter
}

// Parse splits ref with the provider's delimiter.
func (p *StructuredProvider) Parse(ref string) (Reference, error) {
	return ParseReference(ref, p.delimiter)
}

// Resolve resolves ref. Without a key the payload is returned unchanged.
func (p *StructuredProvider) Resolve(ctx context.Context, ref string) (string, error) {
	r, err := p.Parse(ref)
	if err != nil {
		return "", err
	}

	payload, err := p.next.Resolve(ctx, r.ID)
	if err != nil {
		return "", err
	}

	if !r.HasKey() {
		return payload, nil
	}

	value, err := ExtractKey(payload, r.Key)
	if err != nil {
		p.logger.DebugContext(ctx, "key extraction failed",
			"secret_name", r.ID,
			"key", r.Key)
		return "", fmt.Errorf("secret %q: %w", r.ID, err)
	}
	return value, nil
}

// ExtractKey returns the value of key in a JSON object payload.
//
// String values are returned unquoted, null as the empty string, and any
// other value as its JSON text. A payload that is not a JSON object, or that
// lacks key, yields ErrKeyNotFound.
func ExtractKey(payload, key string) (string, error) {
	var object map[string]jsoniter.RawMessage
	if err := json.UnmarshalFromString(payload, &object); err != nil || object == nil {
		return "", fmt.Errorf("%w: %q (payload is not a JSON object)", ErrKeyNotFound, key)
	}

	value, ok := object[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	raw := bytes.TrimSpace(value)

	switch {
	case len(raw) == 0, string(raw) == "null":
		return "", nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decoding key %q: %w", key, err)
		}
		return s, nil
	default:
		return string(raw), nil
	}
}
