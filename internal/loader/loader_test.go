package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitInFlight(t *testing.T, g *Group, key string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !g.InFlight(key) {
		if time.Now().After(deadline) {
			t.Fatalf("fetch for %q never registered", key)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestJoinersShareSingleFetch(t *testing.T) {
	g := &Group{}
	var calls int32
	release := make(chan struct{})

	fn := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "payload", nil
	}

	results := make(chan interface{}, 5)
	go func() {
		v, _ := g.Do(context.Background(), "plan:list", false, fn)
		results <- v
	}()
	waitInFlight(t, g, "plan:list")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := g.Do(context.Background(), "plan:list", false, fn)
			if err != nil {
				t.Errorf("joiner got error: %v", err)
			}
			results <- v
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < 5; i++ {
		if v := <-results; v != "payload" {
			t.Fatalf("expected payload, got %v", v)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 fetch, got %d", n)
	}
}

func TestFailurePropagatesToAllJoiners(t *testing.T) {
	g := &Group{}
	wantErr := errors.New("backend down")
	release := make(chan struct{})

	go func() {
		g.Do(context.Background(), "orders", false, func(ctx context.Context) (interface{}, error) {
			<-release
			return nil, wantErr
		})
	}()
	waitInFlight(t, g, "orders")

	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, err := g.Do(context.Background(), "orders", false, func(ctx context.Context) (interface{}, error) {
				t.Error("joiner must not issue its own fetch")
				return nil, nil
			})
			errs <- err
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(release)

	for i := 0; i < 3; i++ {
		if err := <-errs; !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
	}
}

func TestCleanupAfterSettle(t *testing.T) {
	g := &Group{}
	var calls int32
	fn := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}
	failing := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("boom")
	}

	g.Do(context.Background(), "sub", false, fn)
	g.Do(context.Background(), "sub", false, fn)
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("sequential loads must each fetch, got %d calls", n)
	}

	g.Do(context.Background(), "sub", false, failing)
	g.Do(context.Background(), "sub", false, fn)
	if n := atomic.LoadInt32(&calls); n != 4 {
		t.Fatalf("a failed fetch must not block the next one, got %d calls", n)
	}
	if g.InFlight("sub") {
		t.Fatal("registry entry leaked after settle")
	}
}

func TestForceBypassesJoin(t *testing.T) {
	g := &Group{}
	var calls int32
	release := make(chan struct{})

	go func() {
		g.Do(context.Background(), "plan:abc", false, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return "old", nil
		})
	}()
	waitInFlight(t, g, "plan:abc")

	v, err := g.Do(context.Background(), "plan:abc", true, func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "fresh", nil
	})
	if err != nil || v != "fresh" {
		t.Fatalf("forced reload got (%v, %v)", v, err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("force must issue its own fetch, got %d calls", n)
	}
	close(release)
}

func TestDistinctKeysFetchIndependently(t *testing.T) {
	g := &Group{}
	var calls int32
	for _, key := range []string{"plan:a", "plan:b", "plan:a"} {
		g.Do(context.Background(), key, false, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&calls, 1)
			return key, nil
		})
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected 3 fetches, got %d", n)
	}
}

func TestJoinerHonoursContext(t *testing.T) {
	g := &Group{}
	release := make(chan struct{})
	defer close(release)

	go func() {
		g.Do(context.Background(), "slow", false, func(ctx context.Context) (interface{}, error) {
			<-release
			return nil, nil
		})
	}()
	waitInFlight(t, g, "slow")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Do(ctx, "slow", false, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
