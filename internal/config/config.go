package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// DefaultServerURL is used when no backend address has been configured.
const DefaultServerURL = "http://localhost:8000"

// WindowPref holds per-window persisted state, keyed by window id.
type WindowPref struct {
	Height int `json:"height,omitempty"` // Explicit height in rows (0 = natural)
}

// Config holds the application configuration
type Config struct {
	ServerURL    string                `json:"server_url,omitempty"`
	APIToken     string                `json:"api_token,omitempty"`
	Theme        string                `json:"theme,omitempty"`   // UI theme name (e.g., "dark-purple", "nord")
	Persona      string                `json:"persona,omitempty"` // System persona text sent with chat requests
	InactiveDocs []string              `json:"inactive_docs,omitempty"`
	SplitRatio   float64               `json:"split_ratio,omitempty"` // Left column width fraction
	Windows      map[string]WindowPref `json:"windows,omitempty"`
	WelcomeShown bool                  `json:"welcome_shown,omitempty"` // Whether welcome modal has been shown

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docdesk"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Dir returns the config directory path. Used by the clean command.
func Dir() (string, error) {
	return configDir()
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InactiveDocs: []string{},
		Windows:      make(map[string]WindowPref),
		filePath:     path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Ensure slices and maps are initialized (not nil) after unmarshaling
	// This must happen before Validate() since Validate() only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized ensures all slices and maps are initialized (not nil).
//
// Thread-safety: NOT thread-safe; only called from Load() before the Config
// is shared across goroutines.
func (c *Config) ensureInitialized() {
	if c.InactiveDocs == nil {
		c.InactiveDocs = []string{}
	}
	if c.Windows == nil {
		c.Windows = make(map[string]WindowPref)
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ServerURL != "" {
		if _, err := url.Parse(c.ServerURL); err != nil {
			return fmt.Errorf("invalid server URL %q: %w", c.ServerURL, err)
		}
	}

	if c.SplitRatio != 0 && (c.SplitRatio < 0.1 || c.SplitRatio > 0.9) {
		return fmt.Errorf("split ratio %v out of range", c.SplitRatio)
	}

	seen := make(map[string]bool)
	for _, src := range c.InactiveDocs {
		if src == "" {
			return fmt.Errorf("empty doc source in inactive list")
		}
		if seen[src] {
			return fmt.Errorf("duplicate doc source in inactive list: %s", src)
		}
		seen[src] = true
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetServerURL returns the backend base URL, falling back to the default.
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ServerURL == "" {
		return DefaultServerURL
	}
	return c.ServerURL
}

// SetServerURL updates the backend base URL.
func (c *Config) SetServerURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerURL = u
}

// GetAPIToken returns the configured API token (may be empty).
func (c *Config) GetAPIToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIToken
}

// SetAPIToken updates the API token.
func (c *Config) SetAPIToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIToken = t
}

// GetTheme returns the configured theme name (empty = default)
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme updates the theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetPersona returns the persona text sent with chat requests.
func (c *Config) GetPersona() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Persona
}

// SetPersona updates the persona text.
func (c *Config) SetPersona(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Persona = p
}

// InactiveList returns a copy of the inactive document sources.
func (c *Config) InactiveList() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.InactiveDocs))
	copy(out, c.InactiveDocs)
	return out
}

// IsDocActive reports whether a document source participates in retrieval.
func (c *Config) IsDocActive(source string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.InactiveDocs {
		if s == source {
			return false
		}
	}
	return true
}

// ToggleDoc flips a document source between active and inactive.
// Returns the new active state.
func (c *Config) ToggleDoc(source string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.InactiveDocs {
		if s == source {
			c.InactiveDocs = append(c.InactiveDocs[:i], c.InactiveDocs[i+1:]...)
			return true
		}
	}
	c.InactiveDocs = append(c.InactiveDocs, source)
	return false
}

// GetSplitRatio returns the persisted column split ratio (0 = unset).
func (c *Config) GetSplitRatio() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SplitRatio
}

// SetSplitRatio persists the column split ratio.
func (c *Config) SetSplitRatio(r float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SplitRatio = r
}

// WindowHeight returns the persisted height for a window id, if any.
func (c *Config) WindowHeight(id string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pref, ok := c.Windows[id]
	if !ok || pref.Height == 0 {
		return 0, false
	}
	return pref.Height, true
}

// SetWindowHeight persists an explicit height for a window id.
func (c *Config) SetWindowHeight(id string, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pref := c.Windows[id]
	pref.Height = height
	c.Windows[id] = pref
}

// GetWelcomeShown returns whether the welcome modal has been shown
func (c *Config) GetWelcomeShown() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown records that the welcome modal has been shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}

// ClearPreferences resets everything except the server URL and API token.
// Used by the clean command.
func (c *Config) ClearPreferences() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = ""
	c.Persona = ""
	c.InactiveDocs = []string{}
	c.SplitRatio = 0
	c.Windows = make(map[string]WindowPref)
	c.WelcomeShown = false
}

// ClearAll removes the config file from disk. Used by the clean command.
func ClearAll() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
