package memory

import (
	"sync"
	"testing"
)

func TestRoomStoreLifecycle(t *testing.T) {
	store := NewRoomStore(nil)

	if _, ok := store.Get("1234"); ok {
		t.Fatalf("expected no room before first reference")
	}

	room := store.GetOrCreate("1234")
	if room == nil {
		t.Fatalf("expected room")
	}
	if again := store.GetOrCreate("1234"); again != room {
		t.Fatalf("expected the same room for the same code")
	}
	if got, ok := store.Get("1234"); !ok || got != room {
		t.Fatalf("expected room present")
	}
	if other := store.GetOrCreate("5678"); other == room {
		t.Fatalf("expected distinct rooms for distinct codes")
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 rooms, got %d", store.Len())
	}
}

func TestRoomStoreConcurrentGetOrCreate(t *testing.T) {
	store := NewRoomStore(nil)

	const workers = 32
	got := make([]any, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = store.GetOrCreate("race")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if got[i] != got[0] {
			t.Fatalf("worker %d saw a different room", i)
		}
	}
	if store.Len() != 1 {
		t.Fatalf("expected a single room, got %d", store.Len())
	}
}
