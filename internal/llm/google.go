package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultGoogleBaseURL is the root of the Gemini REST API
	DefaultGoogleBaseURL = "https://generativelanguage.googleapis.com"
	// GoogleAPIKeyEnv names the Gemini REST secret
	GoogleAPIKeyEnv = "GOOGLE_API_KEY"

	// maxErrorBody bounds how much of a failed response is kept in the error
	maxErrorBody = 512
)

// GoogleInvoker calls the Gemini generateContent REST endpoint
type GoogleInvoker struct {
	settings
}

// NewGoogleInvoker creates a Gemini REST invoker
func NewGoogleInvoker(opts ...InvokerOption) *GoogleInvoker {
	return &GoogleInvoker{settings: newSettings(DefaultGoogleBaseURL, opts)}
}

type googleRequest struct {
	Contents         []googleContent        `json:"contents"`
	GenerationConfig googleGenerationConfig `json:"generationConfig"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type googleGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type googleResponse struct {
	Candidates []struct {
		Content struct {
			Parts []googlePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Invoke posts the prompt and returns candidates[0].content.parts[0].text
func (g *GoogleInvoker) Invoke(ctx context.Context, prompt, model string, opts Options) (string, error) {
	apiKey := g.secrets(GoogleAPIKeyEnv)
	if apiKey == "" {
		return "", &ConfigurationError{Provider: ProviderGoogle, EnvVar: GoogleAPIKeyEnv}
	}

	body, err := json.Marshal(googleRequest{
		Contents: []googleContent{{Parts: []googlePart{{Text: prompt}}}},
		GenerationConfig: googleGenerationConfig{
			MaxOutputTokens: opts.MaxTokens,
			Temperature:     opts.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(g.baseURL, "/"), url.PathEscape(model), url.QueryEscape(apiKey))

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", &TransportError{
			Provider: ProviderGoogle,
			Model:    model,
			Message:  "request failed",
			Cause:    stripURL(err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &TransportError{
			Provider:   ProviderGoogle,
			Model:      model,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	var parsed googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &TransportError{
			Provider: ProviderGoogle,
			Model:    model,
			Message:  "failed to decode response",
			Cause:    err,
		}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &EmptyResponseError{Provider: ProviderGoogle, Model: model}
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", &EmptyResponseError{Provider: ProviderGoogle, Model: model}
	}

	return text, nil
}

// stripURL drops the request URL from client errors; it carries the API key
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
