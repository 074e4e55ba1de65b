package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Generator.Count != 10000 {
		t.Fatalf("generator count default = %d", cfg.Generator.Count)
	}
	if cfg.Model.Trees != 100 || cfg.Model.MaxDepth != 10 || cfg.Model.MinLeaf != 5 {
		t.Fatalf("model defaults %+v", cfg.Model)
	}
	if cfg.Model.ClampLow != 0.3 || cfg.Model.ClampHigh != 3.0 {
		t.Fatalf("clamp defaults %v/%v", cfg.Model.ClampLow, cfg.Model.ClampHigh)
	}
	if cfg.Audit.WarnFraction != 0.5 {
		t.Fatalf("warn fraction default = %v", cfg.Audit.WarnFraction)
	}
	if cfg.Risk.MediumFloor != 6 || cfg.Risk.HighFloor != 12 || cfg.Risk.CriticalFloor != 20 {
		t.Fatalf("risk band defaults %+v", cfg.Risk)
	}
	if cfg.Store.Type != "memory" || cfg.Sink.Type != "memory" {
		t.Fatalf("backend defaults %s/%s", cfg.Store.Type, cfg.Sink.Type)
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing environment")
	}
}

func TestLoadRejectsUnknownStoreType(t *testing.T) {
	path := writeConfig(t, "environment: test\nstore:\n  type: s3\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown store type")
	}
}

func TestLoadRejectsRedisWithoutAddr(t *testing.T) {
	path := writeConfig(t, "environment: test\nstore:\n  type: redis\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for redis store without addr")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("GENERATOR_SEED", "99")
	t.Setenv("STORE_TYPE", "memory")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Generator.Seed != 99 {
		t.Fatalf("seed override = %d", cfg.Generator.Seed)
	}
}
