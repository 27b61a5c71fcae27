// Package loader deduplicates concurrent fetches of the same logical
// resource. For any key at most one fetch is in flight: late callers join the
// pending fetch and receive its result instead of issuing a duplicate, while
// a forced call always issues a fresh fetch and takes over the registry slot.
package loader

import (
	"context"
	"sync"
)

// Func performs the actual fetch for a key.
type Func func(ctx context.Context) (interface{}, error)

// flight is the in-memory marker that a fetch for some key is running. Every
// joiner waits on done and then reads val/err, so a failure reaches all of
// them.
type flight struct {
	done chan struct{}
	val  interface{}
	err  error
}

// Group owns the key -> in-flight fetch registry. The zero value is ready to
// use.
type Group struct {
	mu       sync.Mutex
	inflight map[string]*flight
}

// Do runs fn for key, deduplicating against other callers.
//
// Without force, a caller that finds an existing flight for key joins it and
// never runs fn. Otherwise the flight is registered inside the same critical
// section as the existence check, so two callers racing on a cold key cannot
// both observe "no flight" and both fetch. With force, fn always runs and the
// new flight overwrites whatever was registered; the overwritten flight still
// settles for its own joiners but no longer owns the slot.
//
// The registry entry is removed when fn settles, success or failure, so a
// failed fetch never blocks later ones.
func (g *Group) Do(ctx context.Context, key string, force bool, fn Func) (interface{}, error) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flight)
	}
	if !force {
		if f, ok := g.inflight[key]; ok {
			g.mu.Unlock()
			return f.wait(ctx)
		}
	}
	f := &flight{done: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	f.val, f.err = fn(ctx)

	g.mu.Lock()
	// A forced reload may have replaced the slot already; only the current
	// owner removes it.
	if g.inflight[key] == f {
		delete(g.inflight, key)
	}
	g.mu.Unlock()
	close(f.done)

	return f.val, f.err
}

// InFlight reports whether a fetch for key is currently registered.
func (g *Group) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.inflight[key]
	return ok
}

func (f *flight) wait(ctx context.Context) (interface{}, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
