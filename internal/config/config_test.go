package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerAddr != ":3000" {
		t.Errorf("ServerAddr = %q, want :3000", cfg.ServerAddr)
	}
	if cfg.SafetyMargin != 1000 || cfg.ReachBuffer != 1000 {
		t.Errorf("margins = %d/%d, want 1000/1000", cfg.SafetyMargin, cfg.ReachBuffer)
	}
	if cfg.SafeShare != 0.4 || cfg.TargetShare != 0.4 || cfg.ReachShare != 0.2 {
		t.Errorf("shares = %v/%v/%v, want 0.4/0.4/0.2", cfg.SafeShare, cfg.TargetShare, cfg.ReachShare)
	}
	if cfg.EnrichWorkers != 5 {
		t.Errorf("EnrichWorkers = %d, want 5", cfg.EnrichWorkers)
	}
	if cfg.EnrichTimeout != 30*time.Second {
		t.Errorf("EnrichTimeout = %v, want 30s", cfg.EnrichTimeout)
	}
	if cfg.CacheRetention != 5*30*24*time.Hour {
		t.Errorf("CacheRetention = %v, want five months", cfg.CacheRetention)
	}
	if cfg.PerplexityModel != "sonar-pro" {
		t.Errorf("PerplexityModel = %q", cfg.PerplexityModel)
	}
	if cfg.GroqModel != "llama3-70b-8192" {
		t.Errorf("GroqModel = %q", cfg.GroqModel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SAFETY_MARGIN", "2500")
	t.Setenv("ENRICH_TIMEOUT", "10s")
	t.Setenv("SAFE_SHARE", "0.5")

	cfg := Load()
	if cfg.SafetyMargin != 2500 {
		t.Errorf("SafetyMargin = %d, want 2500", cfg.SafetyMargin)
	}
	if cfg.EnrichTimeout != 10*time.Second {
		t.Errorf("EnrichTimeout = %v, want 10s", cfg.EnrichTimeout)
	}
	if cfg.SafeShare != 0.5 {
		t.Errorf("SafeShare = %v, want 0.5", cfg.SafeShare)
	}
}

func TestLoadPerplexityKeys(t *testing.T) {
	t.Setenv("PERPLEXITY_API_KEY_1", "pplx-one")
	t.Setenv("PERPLEXITY_API_KEY_2", "pplx-two")
	// A gap stops the scan: key 4 must be ignored.
	t.Setenv("PERPLEXITY_API_KEY_4", "pplx-four")

	cfg := Load()
	if len(cfg.PerplexityKeys) != 2 {
		t.Fatalf("PerplexityKeys = %v, want the two contiguous keys", cfg.PerplexityKeys)
	}
	if cfg.PerplexityKeys[0] != "pplx-one" || cfg.PerplexityKeys[1] != "pplx-two" {
		t.Errorf("PerplexityKeys = %v, order not preserved", cfg.PerplexityKeys)
	}
}

func TestIsAdminEmail(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "ops@example.com, Admin@Example.com")
	cfg := Load()

	tests := []struct {
		email string
		want  bool
	}{
		{"ops@example.com", true},
		{"OPS@EXAMPLE.COM", true},
		{"admin@example.com", true},
		{" ops@example.com ", true},
		{"someone@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := cfg.IsAdminEmail(tt.email); got != tt.want {
			t.Errorf("IsAdminEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
