package loader

import "sync"

// Status is the staleness state of a cached resource.
type Status int

const (
	NotLoaded Status = iota
	Loading
	Loaded
)

// State tracks whether a resource has been loaded and for which parameters.
// "Loaded for different params" (another project id, another filter) counts
// as not loaded, which removes any ambiguity between an empty result and a
// never-fetched one.
//
// Every issued fetch takes a monotonic sequence number; a settle whose
// sequence is at or below the last applied one is stale (a forced reload
// overtook it) and must not overwrite newer data.
type State struct {
	mu      sync.Mutex
	status  Status
	params  string
	next    uint64
	applied uint64
	lastErr string
}

// IsLoaded reports whether a successful fetch for exactly these params has
// been applied.
func (s *State) IsLoaded(params string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == Loaded && s.params == params
}

// Status returns the current staleness status.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastError returns the message recorded by the most recent failed fetch.
func (s *State) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Begin marks the resource Loading and returns the fetch's sequence number.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != Loaded {
		s.status = Loading
	}
	s.next++
	return s.next
}

// Complete applies a successful fetch. It returns false when a newer fetch
// already applied, in which case the caller must discard its payload instead
// of writing it to the cache.
func (s *State) Complete(seq uint64, params string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.status = Loaded
	s.params = params
	s.lastErr = ""
	return true
}

// Fail records a failed fetch. The status only drops back to NotLoaded when
// nothing has ever loaded; previously loaded data stays valid.
func (s *State) Fail(seq uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return
	}
	s.lastErr = msg
	if s.status == Loading {
		s.status = NotLoaded
	}
}

// Reset drops the resource back to NotLoaded, e.g. on logout.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = NotLoaded
	s.params = ""
	s.lastErr = ""
	s.applied = s.next
}
