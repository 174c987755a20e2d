package models

// Sentinels for facts the providers or the local ranking store could not
// resolve. NotRanked is a legitimate value for NIRFRanking and is never
// counted as missing data.
const (
	NotAvailable = "Not Available"
	NotRanked    = "Not Ranked"
)

// Source identifies which provider (if any) produced an enrichment record.
type Source string

const (
	SourcePerplexity Source = "perplexity"
	SourceGroq       Source = "grok"
	SourceNone       Source = ""
)

// EnrichmentRecord holds the descriptive facts fetched for one
// college/branch pair. Every field is either a validated value or an
// explicit sentinel, never empty.
type EnrichmentRecord struct {
	Summary        string `json:"summary"`
	NIRFRanking    string `json:"nirf_ranking"`
	Fees           string `json:"fees"`
	AveragePackage string `json:"average_package"`
	HighestPackage string `json:"highest_package"`
	Type           string `json:"type"`
	Affiliation    string `json:"affiliation"`
	Website        string `json:"website"`
}

// DefaultEnrichment returns a record with every field set to its sentinel.
func DefaultEnrichment() EnrichmentRecord {
	return EnrichmentRecord{
		Summary:        NotAvailable,
		NIRFRanking:    NotRanked,
		Fees:           NotAvailable,
		AveragePackage: NotAvailable,
		HighestPackage: NotAvailable,
		Type:           NotAvailable,
		Affiliation:    NotAvailable,
		Website:        NotAvailable,
	}
}

// MissingFields counts "Not Available" facts, excluding the ranking field.
func (r EnrichmentRecord) MissingFields() int {
	n := 0
	for _, v := range []string{
		r.Summary, r.Fees, r.AveragePackage, r.HighestPackage,
		r.Type, r.Affiliation, r.Website,
	} {
		if v == NotAvailable {
			n++
		}
	}
	return n
}
