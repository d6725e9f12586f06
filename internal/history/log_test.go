package history

import (
	"sync"
	"testing"
)

func TestAppendAssignsSequence(t *testing.T) {
	l := New[string]()

	first := l.Append(func(seq int64) string { return "a" })
	if first != "a" {
		t.Fatalf("Append: got %q, want a", first)
	}

	var seen []int64
	for range 3 {
		l.Append(func(seq int64) string {
			seen = append(seen, seq)
			return "b"
		})
	}

	want := []int64{2, 3, 4}
	for i, seq := range seen {
		if seq != want[i] {
			t.Errorf("seq[%d]: got %d, want %d", i, seq, want[i])
		}
	}
	if l.Count() != 4 {
		t.Errorf("Count: got %d, want 4", l.Count())
	}
	if l.Len() != 4 {
		t.Errorf("Len: got %d, want 4", l.Len())
	}
}

func TestEntries_PreservesOrder(t *testing.T) {
	l := New[int]()
	for i := range 5 {
		l.Append(func(int64) int { return i * 10 })
	}

	got := l.Entries()
	if len(got) != 5 {
		t.Fatalf("Entries: got %d, want 5", len(got))
	}
	for i, v := range got {
		if v != i*10 {
			t.Errorf("Entries[%d]: got %d, want %d", i, v, i*10)
		}
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	l := New[int]()
	l.Append(func(int64) int { return 1 })
	l.Append(func(int64) int { return 2 })

	got := l.Entries()
	got[0] = 99

	again := l.Entries()
	if again[0] != 1 {
		t.Errorf("Entries[0] after caller mutation: got %d, want 1", again[0])
	}
	if l.Len() != 2 {
		t.Errorf("Len: got %d, want 2", l.Len())
	}
}

func TestClear_ResetsCountAndEntries(t *testing.T) {
	l := New[string]()
	l.Append(func(int64) string { return "x" })
	l.Append(func(int64) string { return "y" })

	l.Clear()

	count, length := l.Snapshot()
	if count != 0 || length != 0 {
		t.Fatalf("Snapshot after Clear: got (%d, %d), want (0, 0)", count, length)
	}
	if got := l.Entries(); got == nil || len(got) != 0 {
		t.Errorf("Entries after Clear: got %#v, want empty non-nil", got)
	}

	var seq int64
	l.Append(func(s int64) string { seq = s; return "z" })
	if seq != 1 {
		t.Errorf("first seq after Clear: got %d, want 1", seq)
	}
}

func TestAppend_Concurrent(t *testing.T) {
	l := New[int64]()
	const goroutines = 50
	const perGoroutine = 40

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perGoroutine {
				l.Append(func(seq int64) int64 { return seq })
			}
		}()
	}
	wg.Wait()

	count, length := l.Snapshot()
	if count != goroutines*perGoroutine {
		t.Fatalf("Count: got %d, want %d", count, goroutines*perGoroutine)
	}
	if int64(length) != count {
		t.Fatalf("Len %d does not match Count %d", length, count)
	}

	for i, seq := range l.Entries() {
		if seq != int64(i+1) {
			t.Fatalf("entry %d: got seq %d, want %d", i, seq, i+1)
		}
	}
}
