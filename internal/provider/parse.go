package provider

import (
	"encoding/json"
	"regexp"
	"strings"

	"pickmycollege/internal/models"
)

// Providers are asked for bare JSON but often fence it anyway. Try the
// fenced form first, then any bare object.
var (
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	bareJSONPattern   = regexp.MustCompile(`(?s)(\{.*\})`)
)

// ParseEnrichment extracts the JSON object from a raw provider response
// and builds a validated record. Any extraction or decode failure yields
// the all-sentinel record. nirfRank is the locally resolved ranking fact
// and always overrides whatever the provider returned: the local store is
// authoritative.
func ParseEnrichment(raw, nirfRank string) models.EnrichmentRecord {
	rec := models.DefaultEnrichment()
	rec.NIRFRanking = nirfRank

	payload := extractJSON(raw)
	if payload == "" {
		return rec
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return rec
	}

	rec.Summary = fieldValue(fields, "summary", rec.Summary)
	rec.Fees = normalizeUnit(fieldValue(fields, "fees", rec.Fees), "lakh", " Lakhs")
	rec.AveragePackage = normalizeUnit(fieldValue(fields, "average_package", rec.AveragePackage), "lpa", " LPA")
	rec.HighestPackage = normalizeUnit(fieldValue(fields, "highest_package", rec.HighestPackage), "lpa", " LPA")
	rec.Type = fieldValue(fields, "type", rec.Type)
	rec.Affiliation = fieldValue(fields, "affiliation", rec.Affiliation)
	rec.Website = fieldValue(fields, "website", rec.Website)

	return rec
}

func extractJSON(raw string) string {
	if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := bareJSONPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

// fieldValue returns the trimmed string value for key, or fallback when
// the field is absent, empty, or already the sentinel.
func fieldValue(fields map[string]any, key, fallback string) string {
	v, ok := fields[key].(string)
	if !ok {
		return fallback
	}
	v = strings.TrimSpace(v)
	if v == "" || v == models.NotAvailable {
		return fallback
	}
	return v
}

// normalizeUnit appends the unit suffix when the provider omitted it.
// Sentinel values pass through untouched.
func normalizeUnit(v, unitToken, suffix string) string {
	if v == models.NotAvailable {
		return v
	}
	if !strings.Contains(strings.ToLower(v), unitToken) {
		return v + suffix
	}
	return v
}
