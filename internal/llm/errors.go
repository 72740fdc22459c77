package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProvider is returned when a provider name has no registered invoker
var ErrUnknownProvider = errors.New("unknown provider")

// ConfigurationError reports a missing provider secret. It is raised before any network call.
type ConfigurationError struct {
	Provider Provider
	EnvVar   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s environment variable not set", e.Provider, e.EnvVar)
}

// TransportError represents a failed HTTP exchange: network error, timeout or non-2xx status
type TransportError struct {
	Provider   Provider
	Model      string
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s:%s transport error", e.Provider, e.Model))
	if e.StatusCode != 0 {
		sb.WriteString(fmt.Sprintf(": status %d", e.StatusCode))
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return sb.String()
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError reports an envelope that parsed but carried no completion text
type EmptyResponseError struct {
	Provider Provider
	Model    string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s:%s returned no completion content", e.Provider, e.Model)
}

// Attempt records one failed candidate
type Attempt struct {
	Candidate Candidate
	Err       error
}

// AllProvidersFailedError is returned when every candidate has been exhausted
type AllProvidersFailedError struct {
	Attempts []Attempt
	// Candidates is the number of candidates considered, attempted or not
	Candidates int
	// Interrupted is set when the context ended the loop early
	Interrupted error
}

func (e *AllProvidersFailedError) Error() string {
	if len(e.Attempts) == 0 && e.Interrupted == nil {
		return fmt.Sprintf("all LLM providers failed: no registered provider among %d candidates", e.Candidates)
	}

	reasons := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		reasons = append(reasons, fmt.Sprintf("%s -- %v", a.Candidate, a.Err))
	}

	if e.Interrupted != nil {
		reasons = append(reasons, fmt.Sprintf("(stopped: %v)", e.Interrupted))
	}
	return "all LLM providers failed: " + strings.Join(reasons, " | ")
}

// Unwrap exposes every recorded cause so errors.Is and errors.As see them
func (e *AllProvidersFailedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts)+1)
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	if e.Interrupted != nil {
		errs = append(errs, e.Interrupted)
	}
	return errs
}
