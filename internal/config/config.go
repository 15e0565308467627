// Package config implements Bark's persisted configuration: a sectioned
// TOML document covering display, sorting, editor, confirmation,
// keybinding, file-handler, connection, favorite, and user-menu state.
//
// Grounded on the teacher's internal/config.Config: a flat top-level
// struct of nested section structs, a Default() constructor, and a
// Validate() pass, generalized from the teacher's JSON/encoding-json
// codec to github.com/BurntSushi/toml per SPEC_FULL.md §4.9 (TOML is
// what the pack's Jesssullivan-pp example uses for its own config, and
// it reads far better than JSON for a file users are expected to edit
// by hand).
package config

// Config is the root of Bark's persisted state. Every field maps to one
// top-level TOML table named in spec.md §6.
type Config struct {
	General           GeneralConfig            `toml:"general"`
	Display           DisplayConfig            `toml:"display"`
	Sorting           SortingConfig            `toml:"sorting"`
	Editor            EditorConfig             `toml:"editor"`
	Confirmations     ConfirmationsConfig      `toml:"confirmations"`
	Theme             map[string]interface{}   `toml:"theme"`
	Keybindings       map[string]string        `toml:"keybindings"`
	Handlers          []HandlerRule            `toml:"handlers"`
	Connections       []ConnectionEntry        `toml:"connections"`
	PluginConnections []PluginConnectionEntry  `toml:"plugin_connections"`
	Favorites         []FavoriteEntry          `toml:"favorites"`
	UserMenu          []UserMenuEntry          `toml:"user_menu"`
}

// GeneralConfig holds process-wide behavior not tied to rendering.
type GeneralConfig struct {
	RememberPath     bool   `toml:"remember_path"`
	StateFile        string `toml:"state_file"`
	HistoryFile      string `toml:"history_file"`
	PluginTimeoutMS  int    `toml:"plugin_timeout_ms"`
}

// DisplayConfig controls panel rendering defaults.
type DisplayConfig struct {
	ShowHidden   bool   `toml:"show_hidden"`
	ViewMode     string `toml:"view_mode"` // "brief" | "full"
	ShowClock    bool   `toml:"show_clock"`
	ColorDepth   string `toml:"color_depth"` // "auto" | "16" | "256" | "truecolor"
}

// SortingConfig is the default Panel sort applied to freshly opened
// panels; each side's own sort can diverge afterward.
type SortingConfig struct {
	Field         string `toml:"field"` // "name" | "size" | "modified" | "extension"
	Descending    bool   `toml:"descending"`
	DirsFirst     bool   `toml:"dirs_first"`
	UppercaseFirst bool  `toml:"uppercase_first"`
}

// EditorConfig controls the external editor handoff (mode.Editing).
type EditorConfig struct {
	Command string `toml:"command"` // empty means fall back to $EDITOR
}

// ConfirmationsConfig toggles which destructive operations prompt first.
type ConfirmationsConfig struct {
	ConfirmDelete    bool `toml:"confirm_delete"`
	ConfirmOverwrite bool `toml:"confirm_overwrite"`
	ConfirmQuit      bool `toml:"confirm_quit"`
}

// HandlerRule is one ordered {regex, command_template} file-open rule;
// the first whose regex matches the entry name wins, per spec.md §6.
type HandlerRule struct {
	Pattern string `toml:"pattern"`
	Command string `toml:"command"`
}

// ConnectionEntry is a saved SFTP connection profile. Password is never
// persisted here; when SavePassword is true the password is stored in
// the OS keychain (internal/provider/sftp via github.com/zalando/go-keyring)
// keyed by Label.
type ConnectionEntry struct {
	Label         string `toml:"label"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	User          string `toml:"user"`
	Path          string `toml:"path"`
	SavePassword  bool   `toml:"save_password"`
}

// PluginConnectionEntry is a saved provider-plugin mount profile.
type PluginConnectionEntry struct {
	Label      string            `toml:"label"`
	PluginName string            `toml:"plugin_name"`
	Fields     map[string]string `toml:"fields"`
}

// FavoriteEntry is a bookmarked directory path with a display label; it
// records no provider kind.
type FavoriteEntry struct {
	Label string `toml:"label"`
	Path  string `toml:"path"`
}

// UserMenuEntry is one configured quick-command shortcut (F2 menu).
type UserMenuEntry struct {
	Label   string `toml:"label"`
	Command string `toml:"command"`
}

// Default returns Bark's built-in configuration, used as the starting
// point for Load. Validate checks fields against fixed value sets and
// does not consult it.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			RememberPath:    true,
			HistoryFile:     "~/.config/bark/history.txt",
			PluginTimeoutMS: 5000,
		},
		Display: DisplayConfig{
			ViewMode:   "brief",
			ColorDepth: "auto",
		},
		Sorting: SortingConfig{
			Field:     "name",
			DirsFirst: true,
		},
		Confirmations: ConfirmationsConfig{
			ConfirmDelete:    true,
			ConfirmOverwrite: true,
		},
		Theme:       map[string]interface{}{},
		Keybindings: map[string]string{},
		Handlers: []HandlerRule{
			{Pattern: `\.(tar|tar\.gz|tgz|zip|tar\.bz2)$`, Command: ""},
		},
	}
}
