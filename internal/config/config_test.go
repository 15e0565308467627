package config

import "testing"

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() failed Validate: %v", err)
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/bark-config.toml")
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if cfg.Display.ViewMode != Default().Display.ViewMode {
		t.Fatalf("expected defaults, got %+v", cfg.Display)
	}
}

func TestSpliceCommentsReattachesPreamble(t *testing.T) {
	prior := "# my sorting preferences\n[sorting]\nfield = \"name\"\n"
	fresh := "[general]\nremember_path = true\n\n[sorting]\nfield = \"size\"\n"
	out := spliceComments(prior, fresh)
	if want := "# my sorting preferences\n[sorting]"; !contains(out, want) {
		t.Fatalf("expected comment re-spliced before [sorting], got:\n%s", out)
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && (func() bool {
		for i := 0; i+len(sub) <= len(s); i++ {
			if s[i:i+len(sub)] == sub {
				return true
			}
		}
		return false
	})()
}
