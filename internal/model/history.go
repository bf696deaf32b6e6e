package model

// Snapshot is a deep copy of the board and side to move, taken right before
// a move is executed.
type Snapshot struct {
	board Board
	turn  Color
}

func newSnapshot(b *Board, turn Color) Snapshot {
	return Snapshot{board: b.Clone(), turn: turn}
}

// Board returns a copy; the snapshot itself is never modified.
func (s Snapshot) Board() Board {
	return s.board.Clone()
}

func (s Snapshot) Turn() Color {
	return s.turn
}

// History is a last-in-first-out stack of snapshots. It grows without bound.
type History struct {
	entries []Snapshot
}

func (h *History) Push(s Snapshot) {
	h.entries = append(h.entries, s)
}

// Pop removes and returns the most recent snapshot. ok is false when the
// history is empty.
func (h *History) Pop() (s Snapshot, ok bool) {
	n := len(h.entries)
	if n == 0 {
		return Snapshot{}, false
	}
	s = h.entries[n-1]
	h.entries[n-1] = Snapshot{}
	h.entries = h.entries[:n-1]
	return s, true
}

func (h *History) Reset() {
	h.entries = nil
}

func (h *History) Len() int {
	return len(h.entries)
}
