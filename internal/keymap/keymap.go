// Package keymap resolves a bubbletea key event to a Bark command name,
// honoring user overrides from internal/config. Grounded on the
// teacher's internal/keymap: a flat table of {Key, Command, Context}
// bindings registered into a Registry and looked up at dispatch time,
// generalized from the teacher's many UI-specific contexts (git-status,
// conversations, file-browser-tree, ...) down to Bark's two contexts —
// "normal" (the dual-pane browser) and "global" (active in every mode).
package keymap

// Binding is one key-to-command mapping scoped to a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry holds the active bindings, indexed for O(1) lookup by
// (context, key), with "global" consulted as a fallback so context
// bindings never have to repeat the handful of always-available keys.
type Registry struct {
	byContext map[string]map[string]string // context -> key -> command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byContext: map[string]map[string]string{}}
}

// RegisterBinding installs or overwrites a binding.
func (r *Registry) RegisterBinding(b Binding) {
	ctx, ok := r.byContext[b.Context]
	if !ok {
		ctx = map[string]string{}
		r.byContext[b.Context] = ctx
	}
	ctx[b.Key] = b.Command
}

// Resolve looks up the command bound to key in context, falling back to
// the "global" context if context has no binding for key. Returns ""
// if nothing matches.
func (r *Registry) Resolve(context, key string) string {
	if ctx, ok := r.byContext[context]; ok {
		if cmd, ok := ctx[key]; ok {
			return cmd
		}
	}
	if ctx, ok := r.byContext["global"]; ok {
		if cmd, ok := ctx[key]; ok {
			return cmd
		}
	}
	return ""
}

// DefaultBindings is Bark's built-in keymap: the dual-pane Normal-mode
// browser plus the handful of keys meaningful from any mode. Dialog
// modes are navigated with a small fixed key set handled directly by
// internal/input rather than routed through the Registry, since their
// bindings (Tab/Enter/Esc/arrows) are not user-configurable.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "?", Command: "help", Context: "global"},
		{Key: "tab", Command: "switch-pane", Context: "global"},

		{Key: "up", Command: "cursor-up", Context: "normal"},
		{Key: "k", Command: "cursor-up", Context: "normal"},
		{Key: "down", Command: "cursor-down", Context: "normal"},
		{Key: "j", Command: "cursor-down", Context: "normal"},
		{Key: "left", Command: "cursor-left", Context: "normal"},
		{Key: "right", Command: "cursor-right", Context: "normal"},
		{Key: "pgup", Command: "page-up", Context: "normal"},
		{Key: "pgdown", Command: "page-down", Context: "normal"},
		{Key: "home", Command: "cursor-home", Context: "normal"},
		{Key: "end", Command: "cursor-end", Context: "normal"},
		{Key: "enter", Command: "open", Context: "normal"},
		{Key: "backspace", Command: "go-up-dir", Context: "normal"},
		{Key: " ", Command: "toggle-select", Context: "normal"},
		{Key: "insert", Command: "toggle-select", Context: "normal"},
		{Key: "+", Command: "select-files", Context: "normal"},
		{Key: "-", Command: "unselect-files", Context: "normal"},
		{Key: "*", Command: "invert-selection", Context: "normal"},

		{Key: "f2", Command: "user-menu", Context: "normal"},
		{Key: "f3", Command: "view", Context: "normal"},
		{Key: "f4", Command: "edit", Context: "normal"},
		{Key: "f5", Command: "copy", Context: "normal"},
		{Key: "f6", Command: "move", Context: "normal"},
		{Key: "f7", Command: "mkdir", Context: "normal"},
		{Key: "f8", Command: "delete", Context: "normal"},
		{Key: "f9", Command: "pull-down-menu", Context: "normal"},
		{Key: "f10", Command: "quit", Context: "normal"},

		{Key: "ctrl+r", Command: "refresh", Context: "normal"},
		{Key: "ctrl+o", Command: "toggle-shell", Context: "normal"},
		{Key: "ctrl+u", Command: "swap-panels", Context: "normal"},
		{Key: "ctrl+\\", Command: "history", Context: "normal"},
		{Key: "alt+h", Command: "toggle-hidden", Context: "normal"},
		{Key: "alt+s", Command: "scp-connect", Context: "normal"},
		{Key: "alt+p", Command: "plugin-connect", Context: "normal"},
		{Key: "alt+f", Command: "find-files", Context: "normal"},
		{Key: "alt+y", Command: "yank-path", Context: "normal"},
		{Key: ":", Command: "command-line", Context: "normal"},
	}
}

// RegisterDefaults installs DefaultBindings into r.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}

// ApplyOverrides installs user-configured action->key overrides from
// internal/config's Keybindings map (action name -> key string) as
// additional bindings in the "normal" context; the command's default
// key stays bound alongside the user-assigned one.
func ApplyOverrides(r *Registry, overrides map[string]string) {
	// overrides map "command" -> "key"; each entry adds a normal-context
	// binding for that key without removing the command's default.
	for command, key := range overrides {
		if key == "" || command == "" {
			continue
		}
		r.RegisterBinding(Binding{Key: key, Command: command, Context: "normal"})
	}
}
