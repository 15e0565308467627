package mode

import "testing"

// exhaustiveSample lists one value of every exported Mode variant; the
// test below checks that their Kind values are pairwise distinct.
func exhaustiveSample() []Mode {
	return []Mode{
		Normal{},
		Viewing{},
		ViewingPlugin{},
		ViewerPluginMenu{},
		ViewerSearch{},
		Help{},
		Editing{},
		RunningCommand{},
		ShellVisible{},
		ShellHistoryView{},
		Confirming{},
		OverwriteConfirm{},
		SimpleConfirm{},
		SourceSelector{},
		MakingDir{},
		FindFiles{},
		SelectFiles{},
		ScpConnect{},
		PluginConnect{},
		ScpPasswordPrompt{},
		ArchivePasswordPrompt{},
		CommandHistory{},
		UserMenu{},
		UserMenuEdit{},
		BackgroundTask{},
		FileOpProgress{},
	}
}

func TestEveryVariantHasADistinctKind(t *testing.T) {
	seen := make(map[Kind]Mode)
	for _, m := range exhaustiveSample() {
		if existing, ok := seen[m.Kind()]; ok {
			t.Fatalf("Kind %v is shared by %T and %T", m.Kind(), existing, m)
		}
		seen[m.Kind()] = m
	}
}

func TestNormalIsZeroValue(t *testing.T) {
	var m Mode = Normal{}
	if m.Kind() != KindNormal {
		t.Fatalf("Normal{}.Kind() = %v, want KindNormal", m.Kind())
	}
}

func TestConfirmingCarriesOpAndSources(t *testing.T) {
	c := Confirming{Op: OpMove, Sources: []string{"/a", "/b"}}
	if c.Kind() != KindConfirming {
		t.Fatalf("Confirming{}.Kind() = %v, want KindConfirming", c.Kind())
	}
	if len(c.Sources) != 2 {
		t.Fatalf("Sources = %v, want length 2", c.Sources)
	}
}
