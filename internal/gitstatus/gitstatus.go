// Package gitstatus shells out to git to build a per-file status map
// for a directory, consumed by internal/panelmgr's per-side cache.
// Grounded on the teacher's internal/app git.go, which shells out to
// `git status --porcelain=v1` and `git rev-parse` for its own
// git-status sidebar plugin; Bark reuses the same subprocess idiom for
// a much smaller purpose (per-entry status glyphs in the panel, not a
// full git UI).
package gitstatus

import (
	"context"
	"os/exec"
	"path"
	"strings"
	"time"
)

// Status is the two-letter porcelain status code for one path, e.g.
// " M" (modified, unstaged), "M " (modified, staged), "A " (added,
// staged), "??" (untracked).
type Status = string

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(dir string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// Scan runs `git status --porcelain=v1` rooted at dir and returns a map
// from entry name (relative to dir, one path component) to its status
// code. Only direct children of dir are reported; deeper paths are
// attributed to their first path component so a directory entry shows
// a status glyph when anything beneath it changed.
func Scan(dir string) (map[string]Status, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain=v1", "--ignored=no")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	statuses := map[string]Status{}
	for _, line := range strings.Split(string(out), "\n") {
		if len(line) < 4 {
			continue
		}
		code := line[:2]
		rest := strings.TrimSpace(line[3:])
		if idx := strings.Index(rest, " -> "); idx >= 0 {
			rest = rest[idx+4:]
		}
		rest = strings.Trim(rest, `"`)
		first := firstComponent(rest)
		if first == "" {
			continue
		}
		if existing, ok := statuses[first]; !ok || priority(code) > priority(existing) {
			statuses[first] = code
		}
	}
	return statuses, nil
}

func firstComponent(rel string) string {
	rel = path.Clean(rel)
	if rel == "." || rel == "" {
		return ""
	}
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return rel
}

// priority ranks status codes so a directory's aggregate glyph reflects
// its most notable child: untracked < modified < staged/added.
func priority(code string) int {
	switch {
	case code == "??":
		return 1
	case strings.TrimSpace(code) == "M" || code[1] == 'M':
		return 2
	default:
		return 3
	}
}
