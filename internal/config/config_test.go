package config

import (
	"os"
	"path/filepath"
	"testing"
)

func tempConfig(t *testing.T) *Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cfg
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg := tempConfig(t)

	if cfg.GetServerURL() != DefaultServerURL {
		t.Errorf("GetServerURL = %q, want default %q", cfg.GetServerURL(), DefaultServerURL)
	}
	if cfg.GetAPIToken() != "" {
		t.Error("Token should default to empty")
	}
	if cfg.GetWelcomeShown() {
		t.Error("Welcome should not be marked shown")
	}
	if len(cfg.InactiveList()) != 0 {
		t.Error("Inactive list should start empty")
	}
}

func TestConfig_SaveAndReload(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.SetServerURL("http://example.com:9000")
	cfg.SetAPIToken("tok")
	cfg.SetPersona("terse")
	cfg.SetSplitRatio(0.4)
	cfg.SetWindowHeight("win_chat", 22)
	cfg.ToggleDoc("a.md")
	cfg.MarkWelcomeShown()

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".docdesk", "config.json")); err != nil {
		t.Fatalf("Config file missing: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if loaded.GetServerURL() != "http://example.com:9000" {
		t.Errorf("ServerURL = %q", loaded.GetServerURL())
	}
	if loaded.GetAPIToken() != "tok" {
		t.Errorf("APIToken = %q", loaded.GetAPIToken())
	}
	if loaded.GetPersona() != "terse" {
		t.Errorf("Persona = %q", loaded.GetPersona())
	}
	if loaded.GetSplitRatio() != 0.4 {
		t.Errorf("SplitRatio = %v", loaded.GetSplitRatio())
	}
	if h, ok := loaded.WindowHeight("win_chat"); !ok || h != 22 {
		t.Errorf("WindowHeight = %d, %v", h, ok)
	}
	if loaded.IsDocActive("a.md") {
		t.Error("a.md should still be inactive after reload")
	}
	if !loaded.GetWelcomeShown() {
		t.Error("WelcomeShown should survive reload")
	}
}

func TestConfig_ToggleDoc(t *testing.T) {
	cfg := tempConfig(t)

	if !cfg.IsDocActive("doc.md") {
		t.Fatal("Documents start active")
	}

	if active := cfg.ToggleDoc("doc.md"); active {
		t.Error("First toggle should deactivate")
	}
	if cfg.IsDocActive("doc.md") {
		t.Error("Document should be inactive")
	}

	if active := cfg.ToggleDoc("doc.md"); !active {
		t.Error("Second toggle should reactivate")
	}
	if !cfg.IsDocActive("doc.md") {
		t.Error("Document should be active again")
	}
	if len(cfg.InactiveList()) != 0 {
		t.Errorf("Inactive list should be empty, got %v", cfg.InactiveList())
	}
}

func TestConfig_InactiveListIsCopy(t *testing.T) {
	cfg := tempConfig(t)
	cfg.ToggleDoc("a.md")

	list := cfg.InactiveList()
	list[0] = "mutated"

	if !cfg.IsDocActive("mutated") {
		t.Error("Mutating the returned slice should not affect the config")
	}
	if cfg.IsDocActive("a.md") {
		t.Error("a.md should still be inactive")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"split ratio out of range", func(c *Config) { c.SplitRatio = 0.95 }, true},
		{"split ratio zero ok", func(c *Config) { c.SplitRatio = 0 }, false},
		{"duplicate inactive doc", func(c *Config) { c.InactiveDocs = []string{"a", "a"} }, true},
		{"empty inactive doc", func(c *Config) { c.InactiveDocs = []string{""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{InactiveDocs: []string{}, Windows: map[string]WindowPref{}}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ClearPreferencesKeepsServer(t *testing.T) {
	cfg := tempConfig(t)
	cfg.SetServerURL("http://keep.me")
	cfg.SetAPIToken("keep")
	cfg.SetPersona("drop")
	cfg.ToggleDoc("drop.md")
	cfg.SetWindowHeight("w", 10)
	cfg.MarkWelcomeShown()

	cfg.ClearPreferences()

	if cfg.GetServerURL() != "http://keep.me" {
		t.Error("Server URL should survive ClearPreferences")
	}
	if cfg.GetAPIToken() != "keep" {
		t.Error("API token should survive ClearPreferences")
	}
	if cfg.GetPersona() != "" {
		t.Error("Persona should be cleared")
	}
	if len(cfg.InactiveList()) != 0 {
		t.Error("Inactive docs should be cleared")
	}
	if _, ok := cfg.WindowHeight("w"); ok {
		t.Error("Window heights should be cleared")
	}
	if cfg.GetWelcomeShown() {
		t.Error("Welcome flag should be cleared")
	}
}

func TestConfig_WindowHeightZeroMeansUnset(t *testing.T) {
	cfg := tempConfig(t)

	if _, ok := cfg.WindowHeight("nope"); ok {
		t.Error("Unknown window should report no height")
	}
	cfg.SetWindowHeight("w", 0)
	if _, ok := cfg.WindowHeight("w"); ok {
		t.Error("Zero height should count as unset")
	}
}
