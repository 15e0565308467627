package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigPath returns the default config file location, honoring
// $XDG_CONFIG_HOME per spec.md §6, falling back to ~/.config.
func ConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bark", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "bark-config.toml"
	}
	return filepath.Join(home, ".config", "bark", "config.toml")
}

// ExpandPath expands a leading "~" to the user's home directory.
// Grounded on the teacher's config.ExpandPath.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads the default config path. A missing file is not an error:
// it yields Default() unchanged, matching spec.md's "first run has no
// config file" behavior.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads path (or the default path, if empty) and overlays it
// onto Default(). Grounded on the teacher's config.LoadFrom, adapted
// from an encoding/json raw-struct merge to a single BurntSushi/toml
// Decode call, since TOML unmarshaling leaves fields absent from the
// file untouched and Default() is decoded into directly, so those
// fields keep their default values —
// matching the teacher's intent (explicit fields override defaults)
// without needing the teacher's separate rawConfig/mergeConfig step.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = ConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	cfg.General.HistoryFile = ExpandPath(cfg.General.HistoryFile)
	cfg.General.StateFile = ExpandPath(cfg.General.StateFile)
	for i := range cfg.Favorites {
		cfg.Favorites[i].Path = ExpandPath(cfg.Favorites[i].Path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
