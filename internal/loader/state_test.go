package loader

import "testing"

func TestStateLoadedTracksParams(t *testing.T) {
	var s State
	if s.IsLoaded("") {
		t.Fatal("fresh state must not be loaded")
	}
	seq := s.Begin()
	if s.Status() != Loading {
		t.Fatal("Begin must mark Loading")
	}
	if !s.Complete(seq, "project-1") {
		t.Fatal("first settle must apply")
	}
	if !s.IsLoaded("project-1") {
		t.Fatal("loaded for project-1")
	}
	if s.IsLoaded("project-2") {
		t.Fatal("different params must read as not loaded")
	}
}

func TestStateEmptyResultStillCountsAsLoaded(t *testing.T) {
	// An empty plan list is a legitimate successful fetch; the loaded flag is
	// explicit and never inferred from result emptiness.
	var s State
	seq := s.Begin()
	s.Complete(seq, "")
	if !s.IsLoaded("") {
		t.Fatal("successful empty fetch must mark the resource loaded")
	}
}

func TestStateDiscardsStaleSettles(t *testing.T) {
	var s State
	slow := s.Begin()
	forced := s.Begin()
	if !s.Complete(forced, "") {
		t.Fatal("forced fetch must apply")
	}
	if s.Complete(slow, "") {
		t.Fatal("overtaken fetch must be discarded")
	}
	s.Fail(slow, "late failure")
	if s.Status() != Loaded || s.LastError() != "" {
		t.Fatal("stale failure must not disturb loaded state")
	}
}

func TestStateFailureKeepsLoadedData(t *testing.T) {
	var s State
	s.Complete(s.Begin(), "p")
	seq := s.Begin()
	s.Fail(seq, "backend down")
	if s.Status() != Loaded {
		t.Fatal("a failed refresh must not drop loaded data")
	}
	if s.LastError() != "backend down" {
		t.Fatalf("last error = %q", s.LastError())
	}
}

func TestStateFailureBeforeFirstLoad(t *testing.T) {
	var s State
	seq := s.Begin()
	s.Fail(seq, "boom")
	if s.Status() != NotLoaded {
		t.Fatal("failure before first load must return to NotLoaded")
	}
}

func TestStateReset(t *testing.T) {
	var s State
	s.Complete(s.Begin(), "p")
	s.Reset()
	if s.Status() != NotLoaded || s.IsLoaded("p") {
		t.Fatal("reset must drop loaded state")
	}
}
