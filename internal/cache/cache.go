// Package cache implements the tiered enrichment cache that sits in front
// of the paid provider APIs. Two Redis-backed tiers exist: one for answers
// produced by the primary provider and one for answers produced by the
// fallback provider. Any prior primary answer satisfies any future request;
// the fallback tier is consulted only when the caller specifically targets
// the fallback provider.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pickmycollege/internal/models"
)

// Store is the subset of gofiber/storage used by the cache tiers.
// Get must return (nil, nil) on a missing key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// maxMissingFields is the largest number of "Not Available" facts
// (ranking excluded) a record may carry and still be cached. Records past
// the threshold are served but not persisted, so a later request gets a
// fresh chance at a complete answer.
const maxMissingFields = 3

// Meta identifies the college a cache entry describes.
type Meta struct {
	CollegeName string `json:"college_name"`
	CollegeCode string `json:"college_code"`
	Branch      string `json:"branch"`
}

// entry is the persisted shape of one cache row.
type entry struct {
	models.EnrichmentRecord
	Meta
	CacheKey  string    `json:"cache_key"`
	CreatedAt time.Time `json:"created_at"`
}

// TieredCache routes reads and writes across the two provider tiers.
type TieredCache struct {
	primary   Store
	fallback  Store
	retention time.Duration
}

// New creates a tiered cache. retention is applied as the store-level TTL
// on every write.
func New(primary, fallback Store, retention time.Duration) *TieredCache {
	return &TieredCache{primary: primary, fallback: fallback, retention: retention}
}

// Fingerprint derives the deterministic cache key for one enrichment
// request: lowercase, whitespace collapsed to underscores.
func Fingerprint(collegeName, collegeCode, branch string, summaryLength int) string {
	raw := fmt.Sprintf("%s_%s_%s_%d", collegeName, collegeCode, branch, summaryLength)
	return strings.ReplaceAll(strings.ToLower(raw), " ", "_")
}

// Get looks up a fingerprint. The primary tier is always checked first:
// a primary answer satisfies any request. The fallback tier is checked
// only when the caller targets the fallback provider. Store errors are
// logged and treated as misses.
func (c *TieredCache) Get(fingerprint string, target models.Source) (models.EnrichmentRecord, bool) {
	if rec, ok := c.lookup(c.primary, "primary", fingerprint); ok {
		return rec, true
	}
	if target == models.SourceGroq {
		if rec, ok := c.lookup(c.fallback, "fallback", fingerprint); ok {
			return rec, true
		}
	}
	return models.EnrichmentRecord{}, false
}

// Put persists a record under the tier of the provider that actually
// produced it. Incomplete records are dropped. Failures are logged and
// non-fatal: a cache entry is a disposable optimization.
func (c *TieredCache) Put(fingerprint string, rec models.EnrichmentRecord, source models.Source, meta Meta) {
	if source == models.SourceNone {
		return
	}
	if Incomplete(rec) {
		slog.Info("incomplete enrichment, not caching",
			"college", meta.CollegeName, "missing", rec.MissingFields())
		return
	}

	e := entry{
		EnrichmentRecord: rec,
		Meta:             meta,
		CacheKey:         fingerprint,
		CreatedAt:        time.Now().UTC(),
	}
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("failed to encode cache entry", "key", fingerprint, "error", err)
		return
	}

	store, tier := c.primary, "primary"
	if source == models.SourceGroq {
		store, tier = c.fallback, "fallback"
	}
	if err := store.Set(fingerprint, data, c.retention); err != nil {
		slog.Error("cache write failed", "tier", tier, "key", fingerprint, "error", err)
	}
}

// Incomplete reports whether a record has too many missing facts to be
// worth caching. The ranking field is excluded: "Not Ranked" is a
// legitimate value.
func Incomplete(rec models.EnrichmentRecord) bool {
	return rec.MissingFields() > maxMissingFields
}

func (c *TieredCache) lookup(store Store, tier, fingerprint string) (models.EnrichmentRecord, bool) {
	data, err := store.Get(fingerprint)
	if err != nil {
		slog.Error("cache read failed", "tier", tier, "key", fingerprint, "error", err)
		return models.EnrichmentRecord{}, false
	}
	if len(data) == 0 {
		return models.EnrichmentRecord{}, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		slog.Error("corrupt cache entry", "tier", tier, "key", fingerprint, "error", err)
		return models.EnrichmentRecord{}, false
	}
	return e.EnrichmentRecord, true
}
