package revocation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestStore_AddContains(t *testing.T) {
	s := New(10, zerolog.Nop())

	if s.Contains("tok-1") {
		t.Fatalf("fresh store should not contain tok-1")
	}

	s.Add("tok-1")
	if !s.Contains("tok-1") {
		t.Fatalf("tok-1 should be revoked after Add")
	}
	if s.Contains("tok-2") {
		t.Fatalf("tok-2 was never revoked")
	}
}

func TestStore_AddIsIdempotent(t *testing.T) {
	s := New(10, zerolog.Nop())

	s.Add("tok-1")
	s.Add("tok-1")
	s.Add("tok-1")

	if got := s.Len(); got != 1 {
		t.Fatalf("expected size 1 after repeated Add, got %d", got)
	}
}

func TestStore_BlankTokenFailsClosed(t *testing.T) {
	s := New(10, zerolog.Nop())

	if !s.Contains("") {
		t.Fatalf("blank token must report revoked")
	}
	if !s.Contains("   ") {
		t.Fatalf("whitespace token must report revoked")
	}

	s.Add("")
	s.Add("  ")
	if got := s.Len(); got != 0 {
		t.Fatalf("blank Add must be a no-op, store size %d", got)
	}
}

func TestStore_ClearsAtCapacity(t *testing.T) {
	s := New(3, zerolog.Nop())

	s.Add("tok-1")
	s.Add("tok-2")
	s.Add("tok-3")
	if got := s.Len(); got != 3 {
		t.Fatalf("expected 3 tokens, got %d", got)
	}

	s.Add("tok-4")
	if got := s.Len(); got != 1 {
		t.Fatalf("expected clear-then-insert to leave 1 token, got %d", got)
	}
	if !s.Contains("tok-4") {
		t.Fatalf("the triggering token must be revoked after the clear")
	}
	if s.Contains("tok-1") {
		t.Fatalf("earlier tokens are dropped by the clear")
	}
}

func TestStore_Sweep(t *testing.T) {
	s := New(10, zerolog.Nop())

	for i := 0; i < 9; i++ {
		s.Add(fmt.Sprintf("tok-%d", i))
	}

	s.Sweep()
	if got := s.Len(); got != 9 {
		t.Fatalf("sweep below the high-water mark must keep the set, size %d", got)
	}

	s.Add("tok-9")
	s.Sweep()
	if got := s.Len(); got != 0 {
		t.Fatalf("sweep above the high-water mark must clear the set, size %d", got)
	}
}

func TestStore_Sweeper(t *testing.T) {
	s := New(10, zerolog.Nop())
	for i := 0; i < 10; i++ {
		s.Add(fmt.Sprintf("tok-%d", i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartSweeper(ctx, 10*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for s.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sweeper did not clear the store, size %d", s.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New(1000, zerolog.Nop())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tok := fmt.Sprintf("tok-%d-%d", g, i)
				s.Add(tok)
				if !s.Contains(tok) {
					t.Errorf("token %s lost after Add", tok)
				}
				if i%25 == 0 {
					s.Sweep()
				}
			}
		}(g)
	}
	wg.Wait()
}
