package pluginhost

import (
	"os"
	"path/filepath"
)

// DiscoverDirs returns the directories Bark scans for plugin
// executables, per spec.md §6: $XDG_DATA_HOME/bark/plugins and
// $XDG_CONFIG_HOME/bark/plugins, falling back to ~/.local/share and
// ~/.config respectively when the XDG variables are unset — the same
// fallback the teacher's cmd/sidecar/main.go applies via
// os.UserConfigDir()/os.UserHomeDir().
func DiscoverDirs() []string {
	var dirs []string
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		dirs = append(dirs, filepath.Join(data, "bark", "plugins"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "bark", "plugins"))
	}
	if cfg := os.Getenv("XDG_CONFIG_HOME"); cfg != "" {
		dirs = append(dirs, filepath.Join(cfg, "bark", "plugins"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "bark", "plugins"))
	}
	return dirs
}

// Discover scans DiscoverDirs() for executable regular files and
// returns their absolute paths. Directories are only rescanned when
// this is called explicitly (startup, or an explicit reload command);
// Bark does not watch them with fsnotify, since spec.md treats plugin
// discovery as a point-in-time scan, not a live feed.
func Discover() []string {
	var found []string
	for _, dir := range DiscoverDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if info.Mode()&0o111 != 0 {
				found = append(found, filepath.Join(dir, e.Name()))
			}
		}
	}
	return found
}
