package modal

import (
	"strings"
	"testing"

	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/styles"
)

func TestRenderNormalIsEmpty(t *testing.T) {
	if got := Render(mode.Normal{}, styles.DefaultStyles, 80); got != "" {
		t.Fatalf("expected empty render for Normal, got %q", got)
	}
}

func TestRenderSimpleConfirmShowsMessage(t *testing.T) {
	m := mode.SimpleConfirm{Message: "Delete 3 files?"}
	out := Render(m, styles.DefaultStyles, 80)
	if !strings.Contains(out, "Delete 3 files?") {
		t.Fatalf("expected message in render, got:\n%s", out)
	}
}

func TestRenderOverwriteConfirmShowsConflict(t *testing.T) {
	m := mode.OverwriteConfirm{
		Conflicts: []mode.Conflict{{Source: "/a/x.txt", Destination: "/b/x.txt"}},
	}
	out := Render(m, styles.DefaultStyles, 80)
	if !strings.Contains(out, "/a/x.txt") || !strings.Contains(out, "/b/x.txt") {
		t.Fatalf("expected conflict paths in render, got:\n%s", out)
	}
}

func TestEditLineClampsCursor(t *testing.T) {
	out := editLine("abc", 99)
	if !strings.HasSuffix(out, "│") {
		t.Fatalf("expected cursor clamped to end, got %q", out)
	}
}
