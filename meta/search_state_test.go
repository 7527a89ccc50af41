package meta

import "testing"

func TestSearchStatePoolReset(t *testing.T) {
	pool := newSearchStatePool(4)

	state := pool.get()
	if len(state.slots) != 4 {
		t.Fatalf("len(slots) = %d, want 4", len(state.slots))
	}
	for i, v := range state.slots {
		if v != -1 {
			t.Errorf("fresh slot %d = %d, want -1", i, v)
		}
	}

	state.slots[0], state.slots[1] = 3, 7
	pool.put(state)
	if state.slots[0] != -1 || state.slots[1] != -1 {
		t.Errorf("put did not reset slots: %v", state.slots)
	}

	pool.put(nil) // must not panic
}

func TestFindSubmatchDoesNotAliasPool(t *testing.T) {
	engine, err := Compile("(a+)")
	if err != nil {
		t.Fatal(err)
	}
	first := engine.FindSubmatch("xaa")
	second := engine.FindSubmatch("aaaa")
	if got := first.GroupIndex(1); got[0] != 1 || got[1] != 3 {
		t.Errorf("first match group changed to %v", got)
	}
	if got := second.GroupIndex(1); got[0] != 0 || got[1] != 4 {
		t.Errorf("second match group = %v", got)
	}
}
