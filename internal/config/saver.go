package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Save writes cfg to the default config path, preserving user comments
// on a best-effort basis. Grounded on the teacher's config.Save
// (internal/config/saver.go), adapted per SPEC_FULL.md §4.9: rather
// than a full TOML CST round-trip, Save collects the comment-only and
// blank lines that preceded each top-level "[section]" table in the
// prior file and re-splices them immediately before the freshly
// marshaled body of that same section. Comments inside a table, and
// any ordering the user gave individual keys within a table, are not
// preserved — sufficient for the collaborator contract without a CST.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes cfg to path.
func SaveTo(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	fresh := buf.String()

	if prior, err := os.ReadFile(path); err == nil {
		fresh = spliceComments(string(prior), fresh)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fresh), 0o644)
}

var sectionHeaderRe = regexp.MustCompile(`^\[([A-Za-z0-9_.]+)\]\s*$`)

// spliceComments re-attaches the comment/blank preamble that preceded
// each top-level section in prior onto the matching section in fresh.
func spliceComments(prior, fresh string) string {
	preambles := collectPreambles(prior)

	freshLines := strings.Split(fresh, "\n")
	var out []string
	for _, line := range freshLines {
		if m := sectionHeaderRe.FindStringSubmatch(line); m != nil {
			if pre, ok := preambles[m[1]]; ok && len(pre) > 0 {
				out = append(out, pre...)
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// collectPreambles scans doc for comment-only/blank runs that
// immediately precede a "[section]" header, keyed by section name.
func collectPreambles(doc string) map[string][]string {
	lines := strings.Split(doc, "\n")
	result := map[string][]string{}
	var pending []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			pending = append(pending, line)
			continue
		}
		if m := sectionHeaderRe.FindStringSubmatch(line); m != nil {
			if len(pending) > 0 {
				result[m[1]] = pending
			}
			pending = nil
			continue
		}
		pending = nil
	}
	return result
}
