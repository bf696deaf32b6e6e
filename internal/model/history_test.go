package model

import "testing"

func TestHistory(t *testing.T) {
	t.Parallel()
	var h History
	if _, ok := h.Pop(); ok {
		t.Fatalf("pop on empty history reported a snapshot")
	}

	b := NewBoard()
	h.Push(newSnapshot(b, White))
	b.squares[6][4], b.squares[4][4] = nil, b.squares[6][4]
	h.Push(newSnapshot(b, Black))
	if n := h.Len(); n != 2 {
		t.Fatalf("unexpected length: got=%d want=2", n)
	}

	s, ok := h.Pop()
	if !ok || s.Turn() != Black {
		t.Fatalf("unexpected top: got=%v,%v want=%v", s.Turn(), ok, Black)
	}
	got := s.Board()
	if !got.Equal(b) {
		t.Errorf("unexpected board in snapshot")
	}

	s, ok = h.Pop()
	if !ok || s.Turn() != White {
		t.Fatalf("unexpected top: got=%v,%v want=%v", s.Turn(), ok, White)
	}
	got = s.Board()
	if !got.Equal(NewBoard()) {
		t.Errorf("snapshot followed later board changes")
	}
	if n := h.Len(); n != 0 {
		t.Errorf("unexpected length: got=%d want=0", n)
	}
}

func TestHistoryReset(t *testing.T) {
	t.Parallel()
	var h History
	for i := 0; i < 5; i++ {
		h.Push(newSnapshot(NewBoard(), White))
	}
	h.Reset()
	if n := h.Len(); n != 0 {
		t.Errorf("unexpected length: got=%d want=0", n)
	}
	if _, ok := h.Pop(); ok {
		t.Errorf("pop after reset reported a snapshot")
	}
}

func TestSnapshotBoardIsCopy(t *testing.T) {
	t.Parallel()
	s := newSnapshot(NewBoard(), White)
	b := s.Board()
	if err := b.Set(7, 4, nil); err != nil {
		t.Fatal(err)
	}
	again := s.Board()
	if p, _ := again.Get(7, 4); p == nil {
		t.Errorf("snapshot modified through returned board")
	}
}
