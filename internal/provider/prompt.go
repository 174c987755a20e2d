package provider

import (
	"fmt"
	"strings"
)

// Query identifies one college/branch enrichment target.
type Query struct {
	CollegeName   string
	CollegeCode   string
	BranchName    string
	SummaryLength int
}

// BuildPrompt renders the enrichment prompt: a demand for exactly one JSON
// object with a fixed field set, explicit unit rules, and the
// "Not Available" sentinel for unknown facts.
func BuildPrompt(q Query) string {
	parts := []string{q.CollegeName}
	if q.CollegeCode != "" {
		parts = append(parts, fmt.Sprintf("code %s", q.CollegeCode))
	}
	if q.BranchName != "" {
		parts = append(parts, fmt.Sprintf("%s branch", q.BranchName))
	}
	parts = append(parts, "fees in lakhs", "placements with LPA", "affiliation", "website")
	contextQuery := strings.Join(parts, " ")

	return fmt.Sprintf(
		"Extract info about %s field: engineering. Output _only_ a valid JSON object with keys:\n"+
			"summary, fees, average_package, highest_package, type, affiliation, website.\n"+
			"Follow these strict rules:\n"+
			"1) Respond with a single JSON object and nothing else.\n"+
			"2) Use only digits and words. No symbols like currency signs or percent.\n"+
			"3) Use \"Not Available\" (in quotes) for missing fields.\n"+
			"4) `fees` must be written in Lakhs (e.g., \"5 Lakhs\").\n"+
			"5) `average_package` and `highest_package` must be in LPA (e.g., \"12.5 LPA\").\n"+
			"6) `summary` must be exactly %d sentences covering:\n"+
			" - College type and location\n"+
			" - Academics or notable departments\n"+
			" - Industry exposure, placements, or reputation\n"+
			" - Campus or student life if relevant\n\n"+
			"Context query: %s",
		q.CollegeName, q.SummaryLength, contextQuery,
	)
}
