package provider

import (
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModel = anthropic.ModelClaudeSonnet4_20250514

// Default output caps used by the patterns: short answers and long-form work.
const (
	DefaultMaxTokens     = 1024
	DefaultLongMaxTokens = 2048
)

// Settings carries the client knobs exposed through configuration.
// An empty BaseURL, a negative MaxRetries and a zero RequestTimeout leave the SDK defaults in place.
type Settings struct {
	BaseURL        string
	MaxRetries     int
	RequestTimeout time.Duration
}

// NewAnthropicClient returns a client using the API key from the env.
// Extra options are applied last so callers (and tests) can override transport.
func NewAnthropicClient(s Settings, extra ...option.RequestOption) *anthropic.Client {
	opts := make([]option.RequestOption, 0, len(extra)+3)
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	if s.MaxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(s.MaxRetries))
	}
	if s.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(s.RequestTimeout))
	}
	opts = append(opts, extra...)
	c := anthropic.NewClient(opts...)
	return &c
}
