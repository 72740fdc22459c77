package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Orchestrator tries candidates in priority order until one returns text
type Orchestrator struct {
	registry Registry
	priority PriorityList
	logger   *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given registry and priority list.
// A nil logger discards output.
func NewOrchestrator(registry Registry, priority PriorityList, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		registry: registry,
		priority: append(PriorityList(nil), priority...),
		logger:   logger,
	}
}

// Priority returns a copy of the static priority list
func (o *Orchestrator) Priority() PriorityList {
	return append(PriorityList(nil), o.priority...)
}

// Candidates builds the ordered candidate list: the preferred pair first, then
// every priority entry except an exact duplicate of the preferred pair.
func (o *Orchestrator) Candidates(preferred *Candidate) []Candidate {
	list := make([]Candidate, 0, len(o.priority)+1)
	if preferred != nil && preferred.Provider != "" && preferred.Model != "" {
		list = append(list, *preferred)
	}
	for _, c := range o.priority {
		if preferred != nil && c == *preferred {
			continue
		}
		list = append(list, c)
	}
	return list
}

// Query returns the first non-empty completion across the candidate list.
// Provider failures are recorded and never escape mid-loop; only exhaustion
// is reported, as *AllProvidersFailedError.
func (o *Orchestrator) Query(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	logger := o.logger.With(slog.String("request_id", uuid.NewString()))
	candidates := o.Candidates(req.Preferred)
	tried := make(map[Candidate]struct{}, len(candidates))
	failure := &AllProvidersFailedError{Candidates: len(candidates)}

	for _, c := range candidates {
		if _, seen := tried[c]; seen {
			continue
		}

		invoker, err := o.registry.Lookup(c.Provider)
		if err != nil {
			logger.WarnContext(ctx, "skipping candidate without invoker",
				slog.String("candidate", c.String()),
			)
			continue
		}

		if err := ctx.Err(); err != nil {
			failure.Interrupted = err
			break
		}

		tried[c] = struct{}{}
		logger.DebugContext(ctx, "calling provider", slog.String("candidate", c.String()))

		text, err := invoker.Invoke(ctx, req.Prompt, c.Model, req.options())
		if err == nil && strings.TrimSpace(text) == "" {
			err = &EmptyResponseError{Provider: c.Provider, Model: c.Model}
		}
		if err == nil {
			if len(failure.Attempts) > 0 {
				logger.InfoContext(ctx, "provider fallback succeeded",
					slog.String("candidate", c.String()),
					slog.Int("attempt", len(failure.Attempts)+1),
				)
			}
			return text, nil
		}

		logger.WarnContext(ctx, "provider failed, trying next",
			slog.String("candidate", c.String()),
			slog.String("error", err.Error()),
			slog.Bool("configuration", isConfigurationError(err)),
		)
		failure.Attempts = append(failure.Attempts, Attempt{Candidate: c, Err: err})
	}

	logger.ErrorContext(ctx, "all providers failed", slog.Int("attempts", len(failure.Attempts)))
	return "", failure
}

func isConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
