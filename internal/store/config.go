package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultAddHostname = "127.0.0.1"
	DefaultAddPort     = "4237"
	DefaultSaveDelay   = 300 * time.Millisecond
)

type GlobalConfig struct {
	// DataDir overrides where the server store lives (default: <ConfigDir>/data).
	DataDir string `json:"dataDir,omitempty"`

	// SaveDelayMs is the debounce window for coalescing saves in the TUI.
	SaveDelayMs int `json:"saveDelayMs,omitempty"`

	// Defaults pre-fill the add-server dialog.
	Defaults *AddDefaults `json:"defaults,omitempty"`

	// TUI holds optional user preferences for the interactive panel.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type AddDefaults struct {
	Hostname string `json:"hostname,omitempty"`
	Port     string `json:"port,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default" or "mono").
	Profile string `json:"profile,omitempty"`
}

// SaveDelay returns the configured debounce window, or DefaultSaveDelay.
func (c *GlobalConfig) SaveDelay() time.Duration {
	if c == nil || c.SaveDelayMs <= 0 {
		return DefaultSaveDelay
	}
	return time.Duration(c.SaveDelayMs) * time.Millisecond
}

// AddDefaults returns the hostname/port pre-filled by the add dialog.
func (c *GlobalConfig) AddDefaults() AddDefaults {
	out := AddDefaults{Hostname: DefaultAddHostname, Port: DefaultAddPort}
	if c == nil || c.Defaults == nil {
		return out
	}
	if h := strings.TrimSpace(c.Defaults.Hostname); h != "" {
		out.Hostname = h
	}
	if p := strings.TrimSpace(c.Defaults.Port); p != "" {
		out.Port = p
	}
	return out
}

// Profile returns the TUI appearance profile id.
func (c *GlobalConfig) Profile() string {
	if c == nil || c.TUI == nil || strings.TrimSpace(c.TUI.Profile) == "" {
		return "default"
	}
	return strings.TrimSpace(c.TUI.Profile)
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.serverpanel).
	if v := strings.TrimSpace(os.Getenv("SERVERPANEL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".serverpanel"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDataDir resolves the store directory: cfg.DataDir, else <ConfigDir>/data.
func (c *GlobalConfig) ResolveDataDir() (string, error) {
	if c != nil {
		if d := strings.TrimSpace(c.DataDir); d != "" {
			return filepath.Clean(d), nil
		}
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Best-effort: keep the previous config next to the new one.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
