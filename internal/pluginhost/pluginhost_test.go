package pluginhost

import "testing"

func TestWantsCloseDefaultsFalse(t *testing.T) {
	r := Response{OK: true}
	if r.WantsClose() {
		t.Fatal("expected omitted close field to default to false")
	}
	yes := true
	r.Close = &yes
	if !r.WantsClose() {
		t.Fatal("expected explicit close:true to report true")
	}
}
