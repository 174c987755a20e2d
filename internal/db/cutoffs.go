package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pickmycollege/internal/models"
)

// ListCategories returns the admission categories present in the weighted
// cutoff store, i.e. the category partitions that actually hold data.
func (d *DB) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `SELECT DISTINCT category FROM weighted_cutoffs ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCutoffs returns the cutoff rows for one category, optionally filtered
// by location and branch code. Filters match whole tokens,
// case-insensitively.
func (d *DB) GetCutoffs(ctx context.Context, category string, locations, branches []string) ([]models.CutoffRecord, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT category, college_code, college_name, branch_code, branch_name,
			location, weighted_avg_cutoff, latest_cutoff, cutoff_history
		FROM weighted_cutoffs
		WHERE category = $1`)

	args := []any{category}
	if len(locations) > 0 {
		args = append(args, lowerAll(locations))
		fmt.Fprintf(&query, " AND lower(location) = ANY($%d)", len(args))
	}
	if len(branches) > 0 {
		args = append(args, lowerAll(branches))
		fmt.Fprintf(&query, " AND lower(branch_code) = ANY($%d)", len(args))
	}
	query.WriteString(" ORDER BY college_code, branch_code")

	rows, err := d.Pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CutoffRecord
	for rows.Next() {
		var rec models.CutoffRecord
		var history []byte
		if err := rows.Scan(
			&rec.Category,
			&rec.CollegeCode,
			&rec.CollegeName,
			&rec.BranchCode,
			&rec.BranchName,
			&rec.Location,
			&rec.WeightedAvgCutoff,
			&rec.LatestCutoff,
			&history,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(history, &rec.CutoffHistory); err != nil {
			return nil, fmt.Errorf("bad cutoff history for %s/%s: %w", rec.CollegeCode, rec.BranchCode, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetCollegeRanks returns the full college_code -> NIRF rank mapping.
func (d *DB) GetCollegeRanks(ctx context.Context) (map[string]int, error) {
	rows, err := d.Pool.Query(ctx, `SELECT college_code, rank FROM college_rankings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranks := make(map[string]int)
	for rows.Next() {
		var code string
		var rank int
		if err := rows.Scan(&code, &rank); err != nil {
			return nil, err
		}
		ranks[code] = rank
	}
	return ranks, rows.Err()
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
