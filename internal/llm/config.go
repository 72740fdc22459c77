// Package llm provides provider invocation and ordered fallback across LLM providers.
// Providers are registered by name so new ones can be added without touching the orchestrator.
package llm

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Provider identifies an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGroq is the Groq OpenAI-compatible endpoint
	ProviderGroq Provider = "groq"
	// ProviderGoogle is the Gemini REST endpoint authenticated with a URL key
	ProviderGoogle Provider = "google"
	// ProviderGemini is Gemini through the generative-ai-go SDK
	ProviderGemini Provider = "gemini"
)

// Default generation settings used when a caller does not override them
const (
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.7
)

var validate = validator.New()

// Candidate is one (provider, model) pair considered during fallback
type Candidate struct {
	Provider Provider `yaml:"provider" json:"provider" validate:"required"`
	Model    string   `yaml:"model" json:"model" validate:"required"`
}

// String renders the candidate as provider:model
func (c Candidate) String() string {
	return fmt.Sprintf("%s:%s", c.Provider, c.Model)
}

// PriorityList is the ordered list of candidates consulted when no preferred pair succeeds
type PriorityList []Candidate

// priorityFile is the on-disk shape of a priority list
type priorityFile struct {
	Priority PriorityList `yaml:"priority" validate:"required,min=1,dive"`
}

// DefaultPriority returns the built-in priority list
func DefaultPriority() PriorityList {
	return PriorityList{
		{Provider: ProviderGroq, Model: "llama3-70b-8192"},
		{Provider: ProviderGoogle, Model: "gemini-2.0-flash"},
	}
}

// LoadPriority reads a priority list from a YAML (or JSON) file
func LoadPriority(path string) (PriorityList, error) {
	if path == "" {
		return nil, fmt.Errorf("priority file path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read priority file %s: %w", path, err)
	}

	return ParsePriority(data)
}

// ParsePriority decodes and validates a priority list document
func ParsePriority(data []byte) (PriorityList, error) {
	var file priorityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse priority list: %w", err)
	}

	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid priority list: %w", err)
	}

	return file.Priority, nil
}

// Request describes one orchestrated query
type Request struct {
	Prompt      string     `validate:"required"`
	MaxTokens   int        `validate:"gt=0"`
	Temperature float64    `validate:"gte=0,lte=2"`
	Preferred   *Candidate `validate:"-"`
}

// NewRequest returns a Request with the default generation settings
func NewRequest(prompt string) Request {
	return Request{
		Prompt:      prompt,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// WithPreferred returns a copy of the request that tries provider:model first.
// The pair is only honoured when both values are non-empty.
func (r Request) WithPreferred(provider Provider, model string) Request {
	if provider == "" || model == "" {
		r.Preferred = nil
		return r
	}
	r.Preferred = &Candidate{Provider: provider, Model: model}
	return r
}

// Validate checks the request bounds
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// Options are the per-call generation settings handed to an Invoker
type Options struct {
	MaxTokens   int
	Temperature float64
}

func (r Request) options() Options {
	return Options{MaxTokens: r.MaxTokens, Temperature: r.Temperature}
}
