package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSecrets(values map[string]string) SecretSource {
	return func(name string) string { return values[name] }
}

func newGroqTestServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-groq-key", r.Header.Get("Authorization"))

		if seen != nil {
			decoded := map[string]any{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&decoded))
			*seen = decoded
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestGroq(baseURL string) *GroqInvoker {
	return NewGroqInvoker(
		WithBaseURL(baseURL+"/"),
		WithSecrets(staticSecrets(map[string]string{GroqAPIKeyEnv: "test-groq-key"})),
		WithTimeout(5*time.Second),
	)
}

func TestGroqInvoker_Success(t *testing.T) {
	var seen map[string]any
	server := newGroqTestServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "llama3-70b-8192",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Framework: LangGraph"}}]
	}`, &seen)

	text, err := newTestGroq(server.URL).Invoke(context.Background(), "pick one", "llama3-70b-8192", Options{MaxTokens: 64, Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, "Framework: LangGraph", text)

	assert.Equal(t, "llama3-70b-8192", seen["model"])
	assert.EqualValues(t, 64, seen["max_tokens"])
	assert.InDelta(t, 0.2, seen["temperature"], 1e-9)

	messages, ok := seen["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg, ok := messages[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "pick one", msg["content"])
}

func TestGroqInvoker_MissingKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	inv := NewGroqInvoker(WithBaseURL(server.URL+"/"), WithSecrets(staticSecrets(nil)))
	_, err := inv.Invoke(context.Background(), "p", "m", Options{MaxTokens: 1})

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, GroqAPIKeyEnv, cfgErr.EnvVar)
	assert.False(t, called, "no request may be sent without a key")
}

func TestGroqInvoker_Non2xx(t *testing.T) {
	server := newGroqTestServer(t, http.StatusTooManyRequests, `{"error": {"message": "rate limited", "type": "tokens"}}`, nil)

	_, err := newTestGroq(server.URL).Invoke(context.Background(), "p", "llama3-70b-8192", Options{MaxTokens: 1})

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, http.StatusTooManyRequests, tErr.StatusCode)
	assert.Equal(t, ProviderGroq, tErr.Provider)
	assert.Contains(t, err.Error(), "rate limited")
	assert.NotContains(t, err.Error(), "test-groq-key")
}

func TestGroqInvoker_NoChoices(t *testing.T) {
	server := newGroqTestServer(t, http.StatusOK, `{"id": "x", "object": "chat.completion", "choices": []}`, nil)

	_, err := newTestGroq(server.URL).Invoke(context.Background(), "p", "llama3-70b-8192", Options{MaxTokens: 1})

	var emptyErr *EmptyResponseError
	assert.True(t, errors.As(err, &emptyErr))
}

func TestGroqInvoker_BlankContent(t *testing.T) {
	server := newGroqTestServer(t, http.StatusOK, `{"id": "x", "object": "chat.completion",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  \n"}}]}`, nil)

	_, err := newTestGroq(server.URL).Invoke(context.Background(), "p", "llama3-70b-8192", Options{MaxTokens: 1})

	var emptyErr *EmptyResponseError
	assert.True(t, errors.As(err, &emptyErr))
}

func TestGroqInvoker_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestGroq(url).Invoke(context.Background(), "p", "llama3-70b-8192", Options{MaxTokens: 1})

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Zero(t, tErr.StatusCode)
	assert.NotNil(t, tErr.Cause)
}
