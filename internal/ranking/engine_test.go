package ranking

import (
	"fmt"
	"reflect"
	"testing"

	"pickmycollege/internal/models"
)

func cutoffRow(code, branch, category string, weightedAvg int) models.CutoffRecord {
	return models.CutoffRecord{
		CollegeCode:       code,
		CollegeName:       "College " + code,
		BranchCode:        branch,
		BranchName:        "Branch " + branch,
		Location:          "Bangalore",
		Category:          category,
		WeightedAvgCutoff: weightedAvg,
		LatestCutoff:      weightedAvg,
		CutoffHistory:     []models.YearCutoff{{Year: 2024, Cutoff: weightedAvg}},
	}
}

func TestBucketingBoundaries(t *testing.T) {
	const cutoff = 10000
	engine := NewEngine(1000, 1000)

	tests := []struct {
		name string
		rank int
		want string
	}{
		{"rank at cutoff minus margin is safe", cutoff - 1000, models.AdmissionSafe},
		{"rank just past margin is target", cutoff - 1000 + 1, models.AdmissionTarget},
		{"rank at cutoff plus buffer is target", cutoff + 1000, models.AdmissionTarget},
		{"rank just past buffer is reach", cutoff + 1000 + 1, models.AdmissionReach},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := map[string][]models.CutoffRecord{
				"GM": {cutoffRow("E001", "CS", "GM", cutoff)},
			}
			got := engine.Select(tt.rank, rows, 5, DefaultDistribution)
			if len(got) != 1 {
				t.Fatalf("Select() returned %d options, want 1", len(got))
			}
			if got[0].AdmissionCategory != tt.want {
				t.Errorf("AdmissionCategory = %s, want %s", got[0].AdmissionCategory, tt.want)
			}
		})
	}
}

func TestBucketingScenario(t *testing.T) {
	// rank 5000 against cutoffs 4000 and 6000 with margin=buffer=1000:
	// A is TARGET (5000 <= 4000+1000), B is SAFE (5000 <= 6000-1000).
	engine := NewEngine(1000, 1000)
	rows := map[string][]models.CutoffRecord{
		"GM": {
			cutoffRow("A", "CS", "GM", 4000),
			cutoffRow("B", "CS", "GM", 6000),
		},
	}

	got := engine.Select(5000, rows, 10, DefaultDistribution)
	if len(got) != 2 {
		t.Fatalf("Select() returned %d options, want 2", len(got))
	}

	byCode := map[string]string{}
	for _, opt := range got {
		byCode[opt.CollegeCode] = opt.AdmissionCategory
	}
	if byCode["A"] != models.AdmissionTarget {
		t.Errorf("college A = %s, want TARGET", byCode["A"])
	}
	if byCode["B"] != models.AdmissionSafe {
		t.Errorf("college B = %s, want SAFE", byCode["B"])
	}
}

func TestReachPenaltyAppliedToDistance(t *testing.T) {
	engine := NewEngine(1000, 1000)
	rows := map[string][]models.CutoffRecord{
		"GM": {cutoffRow("R1", "CS", "GM", 2000)},
	}

	// rank 5000 vs cutoff 2000: REACH, raw distance 3000 plus 1000 penalty.
	got := engine.Select(5000, rows, 5, DefaultDistribution)
	if len(got) != 1 {
		t.Fatalf("Select() returned %d options, want 1", len(got))
	}
	if got[0].AdmissionCategory != models.AdmissionReach {
		t.Fatalf("AdmissionCategory = %s, want REACH", got[0].AdmissionCategory)
	}
	if got[0].Distance != 4000 {
		t.Errorf("Distance = %d, want 4000 (3000 + reach buffer)", got[0].Distance)
	}
}

func TestBestCategoryFold(t *testing.T) {
	engine := NewEngine(1000, 1000)

	tests := []struct {
		name         string
		rank         int
		gmCutoff     int
		catCutoff    int
		wantCategory string
		wantCutoff   int
	}{
		{
			// Only the reserved category admits; it must win.
			name: "admitting category beats non-admitting",
			rank: 5000, gmCutoff: 3000, catCutoff: 7000,
			wantCategory: "SCG", wantCutoff: 7000,
		},
		{
			// Both admit; the higher (safer) cutoff wins.
			name: "higher cutoff wins when both admit",
			rank: 2000, gmCutoff: 4000, catCutoff: 9000,
			wantCategory: "SCG", wantCutoff: 9000,
		},
		{
			// Neither admits; the closer one wins.
			name: "closer cutoff wins when neither admits",
			rank: 10000, gmCutoff: 9000, catCutoff: 4000,
			wantCategory: "GM", wantCutoff: 9000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := map[string][]models.CutoffRecord{
				"GM":  {cutoffRow("E001", "CS", "GM", tt.gmCutoff)},
				"SCG": {cutoffRow("E001", "CS", "SCG", tt.catCutoff)},
			}
			got := engine.Select(tt.rank, rows, 5, DefaultDistribution)
			if len(got) != 1 {
				t.Fatalf("Select() returned %d options, want exactly one per (college, branch)", len(got))
			}
			if got[0].SelectedCategory != tt.wantCategory {
				t.Errorf("SelectedCategory = %s, want %s", got[0].SelectedCategory, tt.wantCategory)
			}
			if got[0].WeightedAvgCutoff != tt.wantCutoff {
				t.Errorf("WeightedAvgCutoff = %d, want %d", got[0].WeightedAvgCutoff, tt.wantCutoff)
			}
		})
	}
}

func TestSingleCategoryPairStillEligible(t *testing.T) {
	engine := NewEngine(1000, 1000)
	rows := map[string][]models.CutoffRecord{
		"GM":  {cutoffRow("E001", "CS", "GM", 6000)},
		"SCG": {cutoffRow("E002", "EC", "SCG", 7000)},
	}

	got := engine.Select(5000, rows, 10, DefaultDistribution)
	if len(got) != 2 {
		t.Fatalf("Select() returned %d options, want 2", len(got))
	}
}

func TestQuotaFill(t *testing.T) {
	engine := NewEngine(1000, 1000)

	// 10 SAFE, 10 TARGET, 10 REACH candidates around rank 50000.
	var rows []models.CutoffRecord
	for i := 0; i < 10; i++ {
		rows = append(rows, cutoffRow(fmt.Sprintf("S%02d", i), "CS", "GM", 52000+i*100)) // safe
		rows = append(rows, cutoffRow(fmt.Sprintf("T%02d", i), "CS", "GM", 50000+i*50))  // target
		rows = append(rows, cutoffRow(fmt.Sprintf("R%02d", i), "CS", "GM", 40000+i*100)) // reach
	}
	byCategory := map[string][]models.CutoffRecord{"GM": rows}

	got := engine.Select(50000, byCategory, 15, DefaultDistribution)
	if len(got) != 15 {
		t.Fatalf("Select() returned %d options, want 15", len(got))
	}

	counts := map[string]int{}
	for _, opt := range got {
		counts[opt.AdmissionCategory]++
	}
	// 40/40/20 of 15: 6 safe, 6 target, 3 reach.
	if counts[models.AdmissionSafe] != 6 || counts[models.AdmissionTarget] != 6 || counts[models.AdmissionReach] != 3 {
		t.Errorf("distribution = %v, want 6/6/3", counts)
	}
}

func TestQuotaFillScarceBuckets(t *testing.T) {
	engine := NewEngine(1000, 1000)

	// Only target candidates exist; the remainder fill must still reach
	// numWanted without fabricating entries.
	var rows []models.CutoffRecord
	for i := 0; i < 8; i++ {
		rows = append(rows, cutoffRow(fmt.Sprintf("T%02d", i), "CS", "GM", 50000+i*50))
	}
	byCategory := map[string][]models.CutoffRecord{"GM": rows}

	got := engine.Select(50000, byCategory, 6, DefaultDistribution)
	if len(got) != 6 {
		t.Errorf("Select() returned %d options, want 6 from remainder fill", len(got))
	}

	got = engine.Select(50000, byCategory, 15, DefaultDistribution)
	if len(got) != 8 {
		t.Errorf("Select() returned %d options, want all 8 available", len(got))
	}
}

func TestNeverExceedsNumWanted(t *testing.T) {
	engine := NewEngine(1000, 1000)
	var rows []models.CutoffRecord
	for i := 0; i < 40; i++ {
		rows = append(rows, cutoffRow(fmt.Sprintf("C%02d", i), "CS", "GM", 45000+i*300))
	}
	byCategory := map[string][]models.CutoffRecord{"GM": rows}

	for _, n := range []int{1, 5, 15, 40, 100} {
		got := engine.Select(50000, byCategory, n, DefaultDistribution)
		want := n
		if want > 40 {
			want = 40
		}
		if len(got) != want {
			t.Errorf("numWanted=%d: got %d options, want %d", n, len(got), want)
		}
	}
}

func TestPresentationOrder(t *testing.T) {
	engine := NewEngine(1000, 1000)
	rows := map[string][]models.CutoffRecord{
		"GM": {
			cutoffRow("A", "CS", "GM", 9000),
			cutoffRow("B", "CS", "GM", 3000),
			cutoffRow("C", "CS", "GM", 6000),
		},
	}

	got := engine.Select(5000, rows, 10, DefaultDistribution)
	for i := 1; i < len(got); i++ {
		if got[i].WeightedAvgCutoff < got[i-1].WeightedAvgCutoff {
			t.Fatalf("output not sorted by weighted avg cutoff: %d before %d",
				got[i-1].WeightedAvgCutoff, got[i].WeightedAvgCutoff)
		}
	}
}

func TestSelectDeterministic(t *testing.T) {
	engine := NewEngine(1000, 1000)
	rows := map[string][]models.CutoffRecord{}
	for _, cat := range []string{"GM", "2AG", "SCG"} {
		for i := 0; i < 20; i++ {
			rows[cat] = append(rows[cat], cutoffRow(fmt.Sprintf("C%02d", i), "CS", cat, 40000+i*700))
		}
	}

	first := engine.Select(50000, rows, 15, DefaultDistribution)
	for run := 0; run < 10; run++ {
		again := engine.Select(50000, rows, 15, DefaultDistribution)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Select() not deterministic: run %d differed", run)
		}
	}
}

func TestEmptyInputs(t *testing.T) {
	engine := NewEngine(1000, 1000)

	if got := engine.Select(5000, nil, 15, DefaultDistribution); len(got) != 0 {
		t.Errorf("Select() with no categories = %d options, want 0", len(got))
	}
	if got := engine.Select(5000, map[string][]models.CutoffRecord{"GM": nil}, 15, DefaultDistribution); len(got) != 0 {
		t.Errorf("Select() with empty category = %d options, want 0", len(got))
	}
}
