package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Values(t *testing.T) {
	c := Default()
	if c == nil {
		t.Fatal("Default() returned nil")
	}
	if c.Strategy != "memo" {
		t.Errorf("Strategy = %q, want memo", c.Strategy)
	}
	if c.Workers != 4 {
		t.Errorf("Workers = %v, want 4", c.Workers)
	}
	if c.Prune || c.Strict || c.ShowRoute || c.Verbose {
		t.Errorf("boolean options should default to false: %+v", c)
	}
	if c.HistoryPath != "" {
		t.Errorf("HistoryPath = %q, want empty", c.HistoryPath)
	}
}

func TestFromMap_Overrides(t *testing.T) {
	c, err := FromMap(map[string]string{
		"strategy":  " dijkstra ",
		"workers":   "2",
		"prune":     "true",
		"strict":    "1",
		"max_steps": "100",
		"route":     "true",
		"history":   "runs.db",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if c.Strategy != "dijkstra" {
		t.Errorf("Strategy = %q, want dijkstra", c.Strategy)
	}
	if c.Workers != 2 || !c.Prune || !c.Strict || c.MaxSteps != 100 || !c.ShowRoute {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.HistoryPath != "runs.db" {
		t.Errorf("HistoryPath = %q, want runs.db", c.HistoryPath)
	}
}

func TestFromMap_Invalid(t *testing.T) {
	tests := []map[string]string{
		{"workers": "many"},
		{"workers": "0"},
		{"prune": "maybe"},
		{"max_steps": "-1"},
	}
	for _, m := range tests {
		if _, err := FromMap(m); err == nil {
			t.Errorf("FromMap(%v) returned nil error", m)
		}
	}
}

func TestLoad_EnvAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("KEYMAZE_WORKERS=7\nKEYMAZE_STRATEGY=explore\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KEYMAZE_STRATEGY", "dijkstra")
	// godotenv only sets variables that are missing; make sure the test
	// environment does not already carry one.
	os.Unsetenv("KEYMAZE_WORKERS")
	t.Cleanup(func() { os.Unsetenv("KEYMAZE_WORKERS") })

	c, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Workers != 7 {
		t.Errorf("Workers = %d, want 7 (from .env)", c.Workers)
	}
	if c.Strategy != "dijkstra" {
		t.Errorf("Strategy = %q, want dijkstra (environment wins)", c.Strategy)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load with missing .env: %v", err)
	}
}
