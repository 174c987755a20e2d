package recommender

import (
	"context"

	"pickmycollege/internal/cache"
	"pickmycollege/internal/models"
	"pickmycollege/internal/provider"
)

// enrichmentBackend is the provider orchestration behind the cache.
type enrichmentBackend interface {
	Enrich(ctx context.Context, q provider.Query, preferred models.Source) (models.EnrichmentRecord, models.Source)
}

// enrichmentCache is the tiered cache surface the enricher needs.
type enrichmentCache interface {
	Get(fingerprint string, target models.Source) (models.EnrichmentRecord, bool)
	Put(fingerprint string, rec models.EnrichmentRecord, source models.Source, meta cache.Meta)
}

// Enricher resolves the facts for one candidate: cache first, providers
// on miss, write-back routed by whichever provider actually answered.
// It is the unit of parallel fan-out in the pipeline.
type Enricher struct {
	cache   enrichmentCache
	backend enrichmentBackend
}

// NewEnricher creates an enricher over the given cache and orchestrator.
func NewEnricher(c enrichmentCache, backend enrichmentBackend) *Enricher {
	return &Enricher{cache: c, backend: backend}
}

// Enrich returns the enrichment record for one candidate. Never fails:
// provider and cache errors degrade to sentinel fields.
func (e *Enricher) Enrich(ctx context.Context, cand models.CandidateOption, preferred models.Source, summaryLength int) models.EnrichmentRecord {
	fp := cache.Fingerprint(cand.CollegeName, cand.CollegeCode, cand.BranchName, summaryLength)

	if rec, ok := e.cache.Get(fp, preferred); ok {
		return rec
	}

	rec, source := e.backend.Enrich(ctx, provider.Query{
		CollegeName:   cand.CollegeName,
		CollegeCode:   cand.CollegeCode,
		BranchName:    cand.BranchName,
		SummaryLength: summaryLength,
	}, preferred)

	e.cache.Put(fp, rec, source, cache.Meta{
		CollegeName: cand.CollegeName,
		CollegeCode: cand.CollegeCode,
		Branch:      cand.BranchName,
	})
	return rec
}
