// Package recommender glues the ranking engine, the tiered cache, and the
// provider orchestrator into the top-level recommendation flow.
package recommender

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"pickmycollege/internal/models"
	"pickmycollege/internal/provider"
	"pickmycollege/internal/ranking"
)

// cutoffStore is the read surface of the weighted cutoff store.
type cutoffStore interface {
	ListCategories(ctx context.Context) ([]string, error)
	GetCutoffs(ctx context.Context, category string, locations, branches []string) ([]models.CutoffRecord, error)
}

// candidateEnricher resolves facts for one candidate.
type candidateEnricher interface {
	Enrich(ctx context.Context, cand models.CandidateOption, preferred models.Source, summaryLength int) models.EnrichmentRecord
}

// Request is one recommendation invocation.
type Request struct {
	Rank          int
	Categories    []string
	Locations     []string
	Branches      []string
	Count         int
	Preferred     models.Source
	SummaryLength int
}

// Response is the recommendation result document.
type Response struct {
	RequestID       string                     `json:"request_id"`
	Recommendations []models.Recommendation    `json:"recommendations"`
	Distribution    models.DistributionSummary `json:"distribution_summary"`
}

// Pipeline runs ranking, then enriches candidates under a bounded worker
// pool with a per-task timeout.
type Pipeline struct {
	store       cutoffStore
	engine      *ranking.Engine
	enricher    candidateEnricher
	ranks       provider.RankLookup
	dist        ranking.Distribution
	workers     int
	taskTimeout time.Duration
}

// NewPipeline wires a pipeline. workers fixes the fan-out width
// independent of candidate count; taskTimeout bounds each enrichment
// call.
func NewPipeline(store cutoffStore, engine *ranking.Engine, enricher candidateEnricher, ranks provider.RankLookup, dist ranking.Distribution, workers int, taskTimeout time.Duration) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		store:       store,
		engine:      engine,
		enricher:    enricher,
		ranks:       ranks,
		dist:        dist,
		workers:     workers,
		taskTimeout: taskTimeout,
	}
}

// Recommend produces the enriched recommendation list for one request.
// Zero matching categories or candidates yields an empty list, not an
// error; enrichment failures degrade per candidate, never drop one.
func (p *Pipeline) Recommend(ctx context.Context, req Request) (*Response, error) {
	resp := &Response{
		RequestID:       uuid.NewString(),
		Recommendations: []models.Recommendation{},
	}

	valid, err := p.resolveCategories(ctx, req.Categories)
	if err != nil {
		return nil, err
	}
	if len(valid) == 0 {
		slog.Info("no requested category exists in cutoff store", "categories", req.Categories)
		return resp, nil
	}

	rowsByCategory := make(map[string][]models.CutoffRecord, len(valid))
	for _, cat := range valid {
		rows, err := p.store.GetCutoffs(ctx, cat, req.Locations, req.Branches)
		if err != nil {
			return nil, err
		}
		rowsByCategory[cat] = rows
	}

	candidates := p.engine.Select(req.Rank, rowsByCategory, req.Count, p.dist)
	if len(candidates) == 0 {
		return resp, nil
	}

	records := p.enrichAll(ctx, candidates, req.Preferred, req.SummaryLength)

	recs := make([]models.Recommendation, len(candidates))
	for i, cand := range candidates {
		recs[i] = models.Recommendation{
			Code:              cand.CollegeCode,
			College:           cand.CollegeName,
			Branch:            cand.BranchName,
			Location:          cand.Location,
			AdmissionCategory: cand.AdmissionCategory,
			SelectedCategory:  cand.SelectedCategory,
			CutoffsByYear:     cand.CutoffHistory,
			LatestCutoff:      cand.LatestCutoff,
			WeightedAvgCutoff: cand.WeightedAvgCutoff,
			EnrichmentRecord:  records[i],
		}
	}
	resp.Recommendations = recs
	resp.Distribution = models.Summarize(recs)
	return resp, nil
}

// resolveCategories intersects the requested categories with the ones
// that actually exist in the store, preserving request order.
func (p *Pipeline) resolveCategories(ctx context.Context, requested []string) ([]string, error) {
	available, err := p.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]struct{}, len(available))
	for _, c := range available {
		existing[c] = struct{}{}
	}

	var valid []string
	for _, c := range requested {
		if _, ok := existing[c]; ok {
			valid = append(valid, c)
		}
	}
	return valid, nil
}

// enrichAll fans out enrichment under the worker limit. A task that
// exceeds its timeout or panics is replaced by the sentinel record plus
// the locally resolved ranking, so no candidate is ever dropped. Results
// land by index, preserving the presentation order the engine imposed.
func (p *Pipeline) enrichAll(ctx context.Context, candidates []models.CandidateOption, preferred models.Source, summaryLength int) []models.EnrichmentRecord {
	records := make([]models.EnrichmentRecord, len(candidates))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand models.CandidateOption) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			tctx, cancel := context.WithTimeout(ctx, p.taskTimeout)
			defer cancel()

			done := make(chan models.EnrichmentRecord, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						slog.Error("enrichment panicked", "college", cand.CollegeName, "panic", r)
					}
				}()
				done <- p.enricher.Enrich(tctx, cand, preferred, summaryLength)
			}()

			select {
			case rec := <-done:
				records[i] = rec
			case <-tctx.Done():
				// The in-flight request is not waited for; only its
				// result is discarded.
				slog.Warn("enrichment timed out, using defaults", "college", cand.CollegeName)
				rec := models.DefaultEnrichment()
				rec.NIRFRanking = p.ranks.Lookup(cand.CollegeCode)
				records[i] = rec
			}
		}(i, cand)
	}
	wg.Wait()
	return records
}
