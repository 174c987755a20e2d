package ranking

import (
	"strconv"

	"pickmycollege/internal/models"
)

// Resolver answers NIRF ranking lookups from an in-memory map loaded once
// at startup. The map is immutable for the process lifetime, so lookups
// are safe from any goroutine.
type Resolver struct {
	ranks map[string]int
}

// NewResolver wraps a college_code -> rank mapping.
func NewResolver(ranks map[string]int) *Resolver {
	if ranks == nil {
		ranks = map[string]int{}
	}
	return &Resolver{ranks: ranks}
}

// Lookup returns the rank figure for a college code, or "Not Ranked" for
// codes absent from the store.
func (r *Resolver) Lookup(collegeCode string) string {
	if rank, ok := r.ranks[collegeCode]; ok {
		return strconv.Itoa(rank)
	}
	return models.NotRanked
}

// Size returns the number of ranked colleges, for startup logs.
func (r *Resolver) Size() int {
	return len(r.ranks)
}
