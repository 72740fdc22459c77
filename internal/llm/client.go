package llm

import (
	"context"
	"net/http"
	"os"
	"sort"
	"time"
)

// DefaultTimeout is the ceiling for a single provider call
const DefaultTimeout = 60 * time.Second

// Invoker performs one call to one provider for the given model.
// Implementations must not retry; fallback happens in the Orchestrator.
type Invoker interface {
	Invoke(ctx context.Context, prompt, model string, opts Options) (string, error)
}

// InvokerFunc adapts a plain function to the Invoker interface
type InvokerFunc func(ctx context.Context, prompt, model string, opts Options) (string, error)

// Invoke calls f
func (f InvokerFunc) Invoke(ctx context.Context, prompt, model string, opts Options) (string, error) {
	return f(ctx, prompt, model, opts)
}

// Querier answers a Request with completion text
type Querier interface {
	Query(ctx context.Context, req Request) (string, error)
}

// Registry maps provider names to their invokers
type Registry map[Provider]Invoker

// Lookup returns the invoker for a provider or ErrUnknownProvider
func (r Registry) Lookup(p Provider) (Invoker, error) {
	inv, ok := r[p]
	if !ok || inv == nil {
		return nil, ErrUnknownProvider
	}
	return inv, nil
}

// Providers returns the registered provider names in sorted order
func (r Registry) Providers() []Provider {
	names := make([]Provider, 0, len(r))
	for p := range r {
		names = append(names, p)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// SecretSource resolves an environment-scoped secret by name
type SecretSource func(name string) string

// EnvSecrets reads secrets from the process environment at call time
func EnvSecrets(name string) string {
	return os.Getenv(name)
}

// settings holds what every HTTP-backed invoker shares
type settings struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	secrets    SecretSource
}

func newSettings(defaultBaseURL string, opts []InvokerOption) settings {
	s := settings{
		baseURL: defaultBaseURL,
		timeout: DefaultTimeout,
		secrets: EnvSecrets,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: s.timeout}
	}
	return s
}

// InvokerOption customises an invoker
type InvokerOption func(*settings)

// WithBaseURL overrides the provider endpoint root (tests, proxies)
func WithBaseURL(url string) InvokerOption {
	return func(s *settings) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithTimeout overrides the per-call ceiling
func WithTimeout(d time.Duration) InvokerOption {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithHTTPClient sets the HTTP client used for calls
func WithHTTPClient(c *http.Client) InvokerOption {
	return func(s *settings) {
		s.httpClient = c
	}
}

// WithSecrets replaces the environment lookup for API keys
func WithSecrets(src SecretSource) InvokerOption {
	return func(s *settings) {
		if src != nil {
			s.secrets = src
		}
	}
}

// RegistryConfig carries per-provider overrides for DefaultRegistry
type RegistryConfig struct {
	Timeout       time.Duration
	GroqBaseURL   string
	GoogleBaseURL string
	Secrets       SecretSource
}

// DefaultRegistry returns invokers for every built-in provider
func DefaultRegistry(cfg RegistryConfig) Registry {
	common := []InvokerOption{WithTimeout(cfg.Timeout), WithSecrets(cfg.Secrets)}

	return Registry{
		ProviderGroq:   NewGroqInvoker(append(common, WithBaseURL(cfg.GroqBaseURL))...),
		ProviderGoogle: NewGoogleInvoker(append(common, WithBaseURL(cfg.GoogleBaseURL))...),
		ProviderGemini: NewGeminiInvoker(common...),
	}
}
