package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAPIKeyEnv names the secret used by the SDK-backed Gemini provider
const GeminiAPIKeyEnv = "GEMINI_API_KEY"

// GeminiInvoker calls Gemini through the generative-ai-go SDK
type GeminiInvoker struct {
	settings
}

// NewGeminiInvoker creates an SDK-backed Gemini invoker.
// WithBaseURL is passed to the SDK as its endpoint when set.
func NewGeminiInvoker(opts ...InvokerOption) *GeminiInvoker {
	return &GeminiInvoker{settings: newSettings("", opts)}
}

// Invoke generates content for a single text prompt
func (g *GeminiInvoker) Invoke(ctx context.Context, prompt, model string, opts Options) (string, error) {
	apiKey := g.secrets(GeminiAPIKeyEnv)
	if apiKey == "" {
		return "", &ConfigurationError{Provider: ProviderGemini, EnvVar: GeminiAPIKeyEnv}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if g.baseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(g.baseURL))
	}

	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return "", &TransportError{
			Provider: ProviderGemini,
			Model:    model,
			Message:  "failed to create Gemini client",
			Cause:    err,
		}
	}
	defer func() { _ = client.Close() }()

	gm := client.GenerativeModel(model)
	gm.SetTemperature(float32(opts.Temperature))
	gm.SetMaxOutputTokens(int32(opts.MaxTokens))

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &TransportError{
			Provider: ProviderGemini,
			Model:    model,
			Message:  "failed to generate content",
			Cause:    err,
		}
	}

	text := textFromResponse(resp)
	if strings.TrimSpace(text) == "" {
		return "", &EmptyResponseError{Provider: ProviderGemini, Model: model}
	}
	return text, nil
}

// textFromResponse joins the text parts of the first candidate
func textFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.Join(parts, "")
}
