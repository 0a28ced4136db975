package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generate.Length != nil || cfg.Generate.Numbers != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesGenerateTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[generate]
numbers = false
both-cases = true
length = 24
save-dir = "/tmp/pw"
legacy-pools = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	g := cfg.Generate
	if g.Numbers == nil || *g.Numbers {
		t.Fatalf("expected numbers=false, got %v", g.Numbers)
	}
	if g.BothCases == nil || !*g.BothCases {
		t.Fatalf("expected both-cases=true")
	}
	if g.Length == nil || *g.Length != 24 {
		t.Fatalf("expected length=24")
	}
	if g.SaveDir == nil || *g.SaveDir != "/tmp/pw" {
		t.Fatalf("expected save-dir")
	}
	if g.LegacyPools == nil || !*g.LegacyPools {
		t.Fatalf("expected legacy-pools=true")
	}
	if g.Letters != nil || g.Count != nil || g.History != nil {
		t.Fatalf("expected unset fields to stay nil")
	}
}

func TestLoadConfigRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[generate\nlength = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuipass", "config.toml") {
		t.Fatalf("unexpected config path: %q", got)
	}
	if got := DefaultDBPath(); !strings.HasPrefix(got, "/data") {
		t.Fatalf("unexpected db path: %q", got)
	}
}
