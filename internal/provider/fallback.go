package provider

import (
	"context"
	"errors"
	"log/slog"

	"pickmycollege/internal/models"
)

// primaryClient issues one request against the multi-key primary provider.
type primaryClient interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

// fallbackClient issues one request against the single-key fallback provider.
type fallbackClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RankLookup resolves the locally authoritative ranking fact for a
// college code, returning "Not Ranked" for unknown codes.
type RankLookup interface {
	Lookup(collegeCode string) string
}

// Orchestrator runs the enrichment request flow: rotate across primary
// keys, fall back to the secondary provider, degrade to sentinels. All
// provider errors are absorbed; Enrich never fails the caller.
type Orchestrator struct {
	keys     *KeyManager
	primary  primaryClient
	fallback fallbackClient
	ranks    RankLookup
}

// NewOrchestrator wires the enrichment flow together.
func NewOrchestrator(keys *KeyManager, primary primaryClient, fallback fallbackClient, ranks RankLookup) *Orchestrator {
	return &Orchestrator{keys: keys, primary: primary, fallback: fallback, ranks: ranks}
}

// Enrich fetches facts for one college/branch target and reports which
// provider answered. preferred selects the provider to try first: the
// primary path rotates keys and falls back to the secondary provider; a
// fallback preference calls the secondary provider directly. On total
// failure the returned source is SourceNone and every field but the
// locally resolved ranking is a sentinel.
func (o *Orchestrator) Enrich(ctx context.Context, q Query, preferred models.Source) (models.EnrichmentRecord, models.Source) {
	prompt := BuildPrompt(q)
	nirfRank := o.ranks.Lookup(q.CollegeCode)

	if preferred == models.SourceGroq {
		if raw, err := o.fallback.Complete(ctx, prompt); err == nil {
			return ParseEnrichment(raw, nirfRank), models.SourceGroq
		} else {
			slog.Warn("fallback provider request failed", "college", q.CollegeName, "error", err)
		}
		rec := models.DefaultEnrichment()
		rec.NIRFRanking = nirfRank
		return rec, models.SourceNone
	}

	raw, err := o.fetchPrimary(ctx, prompt)
	if err == nil {
		return ParseEnrichment(raw, nirfRank), models.SourcePerplexity
	}
	slog.Warn("primary provider unavailable, falling back",
		"college", q.CollegeName, "error", err)

	if raw, err := o.fallback.Complete(ctx, prompt); err == nil {
		return ParseEnrichment(raw, nirfRank), models.SourceGroq
	} else {
		slog.Warn("fallback provider request failed", "college", q.CollegeName, "error", err)
	}

	rec := models.DefaultEnrichment()
	rec.NIRFRanking = nirfRank
	return rec, models.SourceNone
}

// fetchPrimary attempts the primary provider for up to key-count rounds.
// Authorization failures exhaust the key; rate limits and other errors
// only advance rotation. The loop is bounded by the key count so it
// always terminates.
func (o *Orchestrator) fetchPrimary(ctx context.Context, prompt string) (string, error) {
	rounds := o.keys.KeyCount()
	if rounds == 0 {
		return "", ErrKeysExhausted
	}

	for attempt := 0; attempt < rounds; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		key, ok := o.keys.CurrentKey()
		if !ok {
			return "", ErrKeysExhausted
		}
		ordinal := o.keys.KeyOrdinal()

		raw, err := o.primary.Complete(ctx, key, prompt)
		if err == nil {
			return raw, nil
		}

		switch {
		case errors.Is(err, ErrUnauthorized):
			slog.Warn("api key rejected, marking exhausted", "ordinal", ordinal)
			o.keys.MarkExhausted(key)
			o.keys.Advance()
		case errors.Is(err, ErrRateLimited):
			slog.Warn("api key rate limited, rotating", "ordinal", ordinal)
			o.keys.Advance()
		default:
			slog.Warn("primary provider error, rotating", "ordinal", ordinal, "error", err)
			o.keys.Advance()
		}
	}
	return "", ErrKeysExhausted
}
