// Package ranking turns precomputed weighted-average cutoff data into a
// balanced SAFE/TARGET/REACH recommendation list for one student rank.
package ranking

import (
	"sort"

	"pickmycollege/internal/models"
)

// Distribution is the target share of each admission bucket in the final
// list. Shares apply as integer quotas; REACH absorbs rounding remainder.
type Distribution struct {
	Safe   float64
	Target float64
	Reach  float64
}

// DefaultDistribution is the 40/40/20 split used by the original rollout.
var DefaultDistribution = Distribution{Safe: 0.4, Target: 0.4, Reach: 0.2}

// Engine buckets and selects candidate options. Pure computation: given
// identical inputs it produces identical ordered output.
type Engine struct {
	safetyMargin int
	reachBuffer  int
}

// NewEngine creates an engine with the given bucketing margins. A rank at
// most cutoff-safetyMargin is SAFE; at most cutoff+reachBuffer is TARGET;
// beyond that REACH, with reachBuffer added to the option's distance as a
// ranking penalty.
func NewEngine(safetyMargin, reachBuffer int) *Engine {
	return &Engine{safetyMargin: safetyMargin, reachBuffer: reachBuffer}
}

// Select folds the per-category cutoff rows into one best option per
// (college, branch) pair, buckets them, fills the target distribution,
// and returns at most numWanted options sorted ascending by weighted
// average cutoff for presentation.
func (e *Engine) Select(rank int, rowsByCategory map[string][]models.CutoffRecord, numWanted int, dist Distribution) []models.CandidateOption {
	if numWanted <= 0 || len(rowsByCategory) == 0 {
		return nil
	}

	options := e.foldBestOptions(rank, rowsByCategory)

	var safe, target, reach []models.CandidateOption
	for _, opt := range options {
		cutoff := opt.WeightedAvgCutoff
		switch {
		case rank <= cutoff-e.safetyMargin:
			opt.AdmissionCategory = models.AdmissionSafe
			safe = append(safe, opt)
		case rank <= cutoff+e.reachBuffer:
			opt.AdmissionCategory = models.AdmissionTarget
			target = append(target, opt)
		default:
			opt.AdmissionCategory = models.AdmissionReach
			opt.Distance += e.reachBuffer
			reach = append(reach, opt)
		}
	}

	sortByDistance(safe)
	sortByDistance(target)
	sortByDistance(reach)

	safeQuota := int(float64(numWanted) * dist.Safe)
	targetQuota := int(float64(numWanted) * dist.Target)
	reachQuota := numWanted - safeQuota - targetQuota

	selected := make([]models.CandidateOption, 0, numWanted)
	selected = append(selected, head(safe, safeQuota)...)
	selected = append(selected, head(target, targetQuota)...)
	selected = append(selected, head(reach, reachQuota)...)

	if len(selected) < numWanted {
		// Pool the unselected remainder of every bucket and fill the gap
		// with the closest options, whatever their bucket. Note the reach
		// penalty already applied to Distance participates here.
		var pool []models.CandidateOption
		pool = append(pool, tail(safe, safeQuota)...)
		pool = append(pool, tail(target, targetQuota)...)
		pool = append(pool, tail(reach, reachQuota)...)
		sortByDistance(pool)
		selected = append(selected, head(pool, numWanted-len(selected))...)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if a.WeightedAvgCutoff != b.WeightedAvgCutoff {
			return a.WeightedAvgCutoff < b.WeightedAvgCutoff
		}
		if a.CollegeCode != b.CollegeCode {
			return a.CollegeCode < b.CollegeCode
		}
		return a.BranchCode < b.BranchCode
	})
	return selected
}

// foldBestOptions keeps exactly one option per (college, branch) pair:
// for pairs matched by several categories, the one maximizing admission
// likelihood wins — an admitting cutoff beats a non-admitting one, two
// admitting cutoffs prefer the higher (safer) one, two non-admitting
// cutoffs prefer the closer one. Ties keep the earlier category in
// lexicographic order, so the fold is deterministic.
func (e *Engine) foldBestOptions(rank int, rowsByCategory map[string][]models.CutoffRecord) []models.CandidateOption {
	categories := make([]string, 0, len(rowsByCategory))
	for cat := range rowsByCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	type pairKey struct{ college, branch string }
	best := make(map[pairKey]models.CandidateOption)
	var order []pairKey

	for _, cat := range categories {
		for _, row := range rowsByCategory[cat] {
			key := pairKey{row.CollegeCode, row.BranchCode}
			opt := models.CandidateOption{
				CollegeCode:       row.CollegeCode,
				CollegeName:       row.CollegeName,
				BranchCode:        row.BranchCode,
				BranchName:        row.BranchName,
				Location:          row.Location,
				SelectedCategory:  cat,
				WeightedAvgCutoff: row.WeightedAvgCutoff,
				LatestCutoff:      row.LatestCutoff,
				CutoffHistory:     row.CutoffHistory,
				Distance:          absDiff(row.WeightedAvgCutoff, rank),
			}

			current, seen := best[key]
			if !seen {
				best[key] = opt
				order = append(order, key)
				continue
			}
			if betterOption(rank, opt, current) {
				best[key] = opt
			}
		}
	}

	options := make([]models.CandidateOption, 0, len(best))
	for _, key := range order {
		options = append(options, best[key])
	}
	return options
}

// betterOption implements the category total order for one (college,
// branch) pair.
func betterOption(rank int, candidate, current models.CandidateOption) bool {
	candAdmits := rank <= candidate.WeightedAvgCutoff
	currAdmits := rank <= current.WeightedAvgCutoff

	switch {
	case candAdmits && !currAdmits:
		return true
	case candAdmits && currAdmits:
		return candidate.WeightedAvgCutoff > current.WeightedAvgCutoff
	case !candAdmits && !currAdmits:
		return candidate.Distance < current.Distance
	default:
		return false
	}
}

func sortByDistance(opts []models.CandidateOption) {
	sort.SliceStable(opts, func(i, j int) bool {
		a, b := opts[i], opts[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.CollegeCode != b.CollegeCode {
			return a.CollegeCode < b.CollegeCode
		}
		return a.BranchCode < b.BranchCode
	})
}

func head(opts []models.CandidateOption, n int) []models.CandidateOption {
	if n < 0 {
		n = 0
	}
	if n > len(opts) {
		n = len(opts)
	}
	return opts[:n]
}

func tail(opts []models.CandidateOption, n int) []models.CandidateOption {
	if n < 0 {
		n = 0
	}
	if n > len(opts) {
		n = len(opts)
	}
	return opts[n:]
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
