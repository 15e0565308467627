package gitstatus

import "testing"

func TestFirstComponent(t *testing.T) {
	cases := map[string]string{
		"a.txt":          "a.txt",
		"sub/dir/b.txt":  "sub",
		"./c.txt":        "c.txt",
		"":                "",
	}
	for in, want := range cases {
		if got := firstComponent(in); got != want {
			t.Errorf("firstComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPriorityOrdersUntrackedBelowStaged(t *testing.T) {
	if priority("??") >= priority("A ") {
		t.Fatal("expected untracked to rank below staged")
	}
}
