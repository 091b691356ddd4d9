package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	cachedirective "github.com/always-cache/cache-directive/pkg/cache-directive"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if config.Server.Port != 8080 {
		t.Errorf("port is %d", config.Server.Port)
	}
	if config.Server.Origin != "" || len(config.Rules) != 0 {
		t.Errorf("unexpected config %+v", config)
	}
}

func TestGetConfigFile(t *testing.T) {
	filename := writeConfig(t, `
server:
  port: 9000
  origin: http://localhost:3000
rules:
  - prefix: /assets/
    pattern: public
    options:
      maxAge: 1 year
      immutable: true
  - path: /account
    options:
      private: true
      noTransform: true
`)
	config, err := getConfig(filename)
	if err != nil {
		t.Fatal(err)
	}
	if config.Server.Port != 9000 || config.Server.Origin != "http://localhost:3000" {
		t.Errorf("server config is %+v", config.Server)
	}
	if len(config.Rules) != 2 {
		t.Fatalf("got %d rules", len(config.Rules))
	}
	if config.Rules[0].Options["maxAge"] != "1 year" {
		t.Errorf("options are %v", config.Rules[0].Options)
	}
}

func TestGetConfigEnvOverrides(t *testing.T) {
	filename := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("CACHE_DIRECTIVE_PORT", "9100")
	t.Setenv("CACHE_DIRECTIVE_ORIGIN", "https://origin.example")
	t.Setenv("CACHE_DIRECTIVE_ORIGIN_HOST", "example.com")

	config, err := getConfig(filename)
	if err != nil {
		t.Fatal(err)
	}
	if config.Server.Port != 9100 {
		t.Errorf("port is %d", config.Server.Port)
	}
	if config.Server.Origin != "https://origin.example" || config.Server.OriginHost != "example.com" {
		t.Errorf("server config is %+v", config.Server)
	}
}

func TestGetConfigInvalidRule(t *testing.T) {
	filename := writeConfig(t, `
rules:
  - prefix: /
    pattern: public
    options:
      private: true
`)
	_, err := getConfig(filename)
	if !errors.Is(err, cachedirective.ErrExclusiveDirectiveConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetConfigMissingFile(t *testing.T) {
	if _, err := getConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetConfigInvalidPort(t *testing.T) {
	t.Setenv("CACHE_DIRECTIVE_PORT", "eighty")
	if _, err := getConfig(""); err == nil {
		t.Fatal("expected error")
	}
}
