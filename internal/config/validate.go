package config

import "fmt"

// Validate checks field-level invariants that Load cannot enforce via
// zero-value defaulting alone (out-of-range enums, negative durations).
// Grounded on the teacher's Config.Validate pass in internal/config/config.go.
func (c *Config) Validate() error {
	switch c.Display.ViewMode {
	case "brief", "full":
	default:
		return fmt.Errorf("config: display.view_mode must be \"brief\" or \"full\", got %q", c.Display.ViewMode)
	}
	switch c.Display.ColorDepth {
	case "auto", "16", "256", "truecolor":
	default:
		return fmt.Errorf("config: display.color_depth must be auto/16/256/truecolor, got %q", c.Display.ColorDepth)
	}
	switch c.Sorting.Field {
	case "name", "size", "modified", "extension":
	default:
		return fmt.Errorf("config: sorting.field must be name/size/modified/extension, got %q", c.Sorting.Field)
	}
	if c.General.PluginTimeoutMS < 0 {
		return fmt.Errorf("config: general.plugin_timeout_ms must not be negative")
	}
	for i, h := range c.Handlers {
		if h.Pattern == "" {
			return fmt.Errorf("config: handlers[%d] has an empty pattern", i)
		}
	}
	for i, conn := range c.Connections {
		if conn.Host == "" {
			return fmt.Errorf("config: connections[%d] has an empty host", i)
		}
	}
	return nil
}
