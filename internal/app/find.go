package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/provider"
)

// findResultMsg carries the outcome of a find-files scan back to Update.
type findResultMsg struct {
	Pattern string
	Root    string
	Entries []entry.Entry
	Err     error
}

// findFilesCmd walks prov recursively from root, collecting entries
// whose name matches the shell glob pattern, and reports the result as
// a findResultMsg once the whole tree has been visited. There is no
// depth bound; Cancel is not threaded through here since find-files is
// not wired into task.Manager (it has no byte/file count to report
// progress against, per mode.BackgroundTask's own doc comment).
func findFilesCmd(prov provider.Provider, root, pattern string) tea.Cmd {
	return func() tea.Msg {
		var matches []entry.Entry
		err := walkFind(prov, root, pattern, &matches)
		return findResultMsg{Pattern: pattern, Root: root, Entries: matches, Err: err}
	}
}

func walkFind(prov provider.Provider, dir, pattern string, out *[]entry.Entry) error {
	entries, err := prov.ListDirectory(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsParent() {
			continue
		}
		if ok, _ := filepath.Match(pattern, e.Name); ok {
			*out = append(*out, e)
		}
		if e.IsDir && !e.IsSymlink {
			walkFind(prov, e.Path, pattern, out)
		}
	}
	return nil
}
