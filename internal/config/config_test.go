package config

import (
	"testing"
	"time"
)

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"three keys", "key1,key2,key3", 3},
		{"drops blanks", "key1,,key3", 2},
		{"trims whitespace", " key1 , key2 ", 2},
		{"empty", "", 0},
		{"only commas", ",,,", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitKeys(tt.raw); len(got) != tt.want {
				t.Errorf("splitKeys(%q) = %v, want %d keys", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerAddr != ":3000" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, ":3000")
	}
	if cfg.EvalCacheTTL != time.Hour {
		t.Errorf("EvalCacheTTL = %v, want %v", cfg.EvalCacheTTL, time.Hour)
	}
	if cfg.AggregateCacheTTL != 24*time.Hour {
		t.Errorf("AggregateCacheTTL = %v, want %v", cfg.AggregateCacheTTL, 24*time.Hour)
	}
	if cfg.PlaylistSampleSize != 5 {
		t.Errorf("PlaylistSampleSize = %d, want 5", cfg.PlaylistSampleSize)
	}
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_TTL", "30m")
	if d := getDuration("TEST_TTL", time.Hour); d != 30*time.Minute {
		t.Errorf("getDuration() = %v, want 30m", d)
	}

	t.Setenv("TEST_TTL", "garbage")
	if d := getDuration("TEST_TTL", time.Hour); d != time.Hour {
		t.Errorf("getDuration() fallback = %v, want 1h", d)
	}
}
