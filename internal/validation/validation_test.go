package validation

import (
	"reflect"
	"testing"
)

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single", "GM", []string{"GM"}},
		{"lowercased input", "gm,2ag", []string{"GM", "2AG"}},
		{"whitespace trimmed", " GM , SCG ", []string{"GM", "SCG"}},
		{"duplicates dropped", "GM,gm,GM", []string{"GM"}},
		{"malformed dropped", "GM,S-C,2AG,c@t", []string{"GM", "2AG"}},
		{"empty tokens dropped", ",,GM,,", []string{"GM"}},
		{"all invalid", ",-,", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCategories(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeCategories(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSplitFilter(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Bangalore", []string{"Bangalore"}},
		{"Bangalore, Mysore", []string{"Bangalore", "Mysore"}},
		{" , CS ,", []string{"CS"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := SplitFilter(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitFilter(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		n, def, max, want int
	}{
		{0, 15, 50, 15},
		{-3, 15, 50, 15},
		{1, 15, 50, 1},
		{15, 15, 50, 15},
		{50, 15, 50, 50},
		{51, 15, 50, 50},
	}

	for _, tt := range tests {
		if got := ClampCount(tt.n, tt.def, tt.max); got != tt.want {
			t.Errorf("ClampCount(%d, %d, %d) = %d, want %d", tt.n, tt.def, tt.max, got, tt.want)
		}
	}
}
