package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
registry:
  api: https://crates.example.com/
  strategy: list
tag:
  via: api
github:
  owner: rust-osdev
  repo: x86_64
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Registry.API != "https://crates.example.com" {
		t.Fatalf("API = %q, want trailing slash trimmed", cfg.Registry.API)
	}
	if cfg.Registry.Strategy != StrategyList {
		t.Fatalf("Strategy = %q, want list", cfg.Registry.Strategy)
	}
	if cfg.Tag.Via != TagViaAPI {
		t.Fatalf("Via = %q, want api", cfg.Tag.Via)
	}
	if cfg.Tag.Remote != "origin" {
		t.Fatalf("Remote = %q, want default origin", cfg.Tag.Remote)
	}
}

func TestParseFaults(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "unknown strategy", in: "registry:\n  strategy: direct\n"},
		{name: "unknown tag mode", in: "tag:\n  via: subversion\n"},
		{name: "api mode without owner", in: "tag:\n  via: api\n"},
		{name: "unknown field", in: "registry:\n  host: nope\n"},
		{name: "malformed yaml", in: "registry: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.in)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Registry.Strategy != StrategyIndex || cfg.Tag.Via != TagViaGit {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadExplicitMissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("explicitly named missing config must fail")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crateship.yaml")
	if err := os.WriteFile(path, []byte("registry:\n  strategy: lookup\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Registry.Strategy != StrategyLookup {
		t.Fatalf("Strategy = %q, want lookup", cfg.Registry.Strategy)
	}
}
