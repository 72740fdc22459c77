package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// DefaultGroqBaseURL is the root of Groq's OpenAI-compatible API
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1/"
	// GroqAPIKeyEnv names the Groq secret
	GroqAPIKeyEnv = "GROQ_API_KEY"
)

// GroqInvoker calls Groq chat completions through the OpenAI SDK
type GroqInvoker struct {
	settings
}

// NewGroqInvoker creates a Groq invoker
func NewGroqInvoker(opts ...InvokerOption) *GroqInvoker {
	return &GroqInvoker{settings: newSettings(DefaultGroqBaseURL, opts)}
}

// Invoke sends the prompt as a single user message and returns choices[0].message.content
func (g *GroqInvoker) Invoke(ctx context.Context, prompt, model string, opts Options) (string, error) {
	apiKey := g.secrets(GroqAPIKeyEnv)
	if apiKey == "" {
		return "", &ConfigurationError{Provider: ProviderGroq, EnvVar: GroqAPIKeyEnv}
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(g.baseURL),
		option.WithHTTPClient(g.httpClient),
		option.WithRequestTimeout(g.timeout),
		option.WithMaxRetries(0),
	)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(opts.MaxTokens)),
		Temperature: openai.Float(opts.Temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := strings.TrimSpace(apiErr.Message)
			if msg == "" {
				msg = "API returned an error"
			}
			return "", &TransportError{
				Provider:   ProviderGroq,
				Model:      model,
				StatusCode: apiErr.StatusCode,
				Message:    msg,
				Cause:      err,
			}
		}
		return "", &TransportError{
			Provider: ProviderGroq,
			Model:    model,
			Message:  "request failed",
			Cause:    err,
		}
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", &EmptyResponseError{Provider: ProviderGroq, Model: model}
	}

	return completion.Choices[0].Message.Content, nil
}
