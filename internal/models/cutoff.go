package models

// YearCutoff is one historical admission round for a college/branch/category.
type YearCutoff struct {
	Year   int `json:"year"`
	Cutoff int `json:"cutoff"`
}

// CutoffRecord is one row of a category partition in the weighted cutoff
// store: the time-decayed cutoff for a (college, branch, category) triple
// plus its raw history, most recent year first. Produced by the batch
// preprocessing job; read-only here.
type CutoffRecord struct {
	CollegeCode       string       `json:"college_code"`
	CollegeName       string       `json:"college_name"`
	BranchCode        string       `json:"branch_code"`
	BranchName        string       `json:"branch_name"`
	Location          string       `json:"location"`
	Category          string       `json:"category"`
	WeightedAvgCutoff int          `json:"weighted_avg_cutoff"`
	LatestCutoff      int          `json:"latest_cutoff"`
	CutoffHistory     []YearCutoff `json:"cutoff_history"`
}
