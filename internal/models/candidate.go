package models

// Admission likelihood buckets.
const (
	AdmissionSafe   = "SAFE"
	AdmissionTarget = "TARGET"
	AdmissionReach  = "REACH"
)

// CandidateOption is one recommendable (college, branch) pair, carrying the
// best reservation category found for it across all requested categories.
// Distance is |weighted_avg_cutoff - rank|, increased by the reach buffer
// when the option is bucketed REACH.
type CandidateOption struct {
	CollegeCode       string       `json:"college_code"`
	CollegeName       string       `json:"college_name"`
	BranchCode        string       `json:"branch_code"`
	BranchName        string       `json:"branch_name"`
	Location          string       `json:"location"`
	SelectedCategory  string       `json:"selected_category"`
	WeightedAvgCutoff int          `json:"weighted_avg_cutoff"`
	LatestCutoff      int          `json:"latest_cutoff"`
	CutoffHistory     []YearCutoff `json:"cutoffs_by_year"`
	Distance          int          `json:"-"`
	AdmissionCategory string       `json:"admission_category"`
}

// Recommendation is the final API shape: a candidate with its enrichment
// facts flattened alongside.
type Recommendation struct {
	Code              string       `json:"code"`
	College           string       `json:"college"`
	Branch            string       `json:"branch"`
	Location          string       `json:"location"`
	AdmissionCategory string       `json:"admission_category"`
	SelectedCategory  string       `json:"selected_category"`
	CutoffsByYear     []YearCutoff `json:"cutoffs_by_year"`
	LatestCutoff      int          `json:"latest_cutoff"`
	WeightedAvgCutoff int          `json:"weighted_avg_cutoff"`

	EnrichmentRecord
}

// DistributionSummary counts recommendations per admission bucket.
type DistributionSummary struct {
	SafeCount   int `json:"safe_count"`
	TargetCount int `json:"target_count"`
	ReachCount  int `json:"reach_count"`
	TotalCount  int `json:"total_count"`
}

// Summarize tallies the admission buckets of a recommendation list.
func Summarize(recs []Recommendation) DistributionSummary {
	s := DistributionSummary{TotalCount: len(recs)}
	for _, r := range recs {
		switch r.AdmissionCategory {
		case AdmissionSafe:
			s.SafeCount++
		case AdmissionTarget:
			s.TargetCount++
		case AdmissionReach:
			s.ReachCount++
		}
	}
	return s
}
