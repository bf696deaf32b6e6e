package model

import "fmt"

// SelectionResult tells a presentation layer what a square click changed.
type SelectionResult uint8

const (
	NoOp SelectionResult = iota
	Selected
	Deselected
	MoveApplied
	MoveRejected
)

var selectionResultNames = [...]string{"noOp", "selected", "deselected", "moveApplied", "moveRejected"}

func (r SelectionResult) String() string {
	if int(r) < len(selectionResultNames) {
		return selectionResultNames[r]
	}
	return ""
}

func (r SelectionResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Session owns one game: the live board, the side to move, the undo history
// and the pending selection. It is not safe for concurrent use; hosts that
// share a Session must serialize calls into it.
type Session struct {
	board    Board
	turn     Color
	history  History
	selected *Position
}

func NewSession() *Session {
	s := &Session{}
	s.NewGame()
	return s
}

// NewGame restores the starting position with White to move and forgets all
// history and selection.
func (s *Session) NewGame() {
	s.board.Initialize()
	s.turn = White
	s.history.Reset()
	s.selected = nil
}

func (s *Session) CurrentTurn() Color {
	return s.turn
}

func (s *Session) PieceAt(row, col int) (*Piece, error) {
	return s.board.Get(row, col)
}

// Board returns a copy of the live board.
func (s *Session) Board() Board {
	return s.board.Clone()
}

func (s *Session) HistoryLen() int {
	return s.history.Len()
}

func (s *Session) Selection() (Position, bool) {
	if s.selected == nil {
		return Position{}, false
	}
	return *s.selected, true
}

func (s *Session) IsLegalMove(from, to Position) bool {
	return IsLegalMove(&s.board, from, to)
}

// ApplyMove executes a move already confirmed by IsLegalMove. The state
// before the move is pushed onto the history; a piece on the destination is
// discarded.
func (s *Session) ApplyMove(from, to Position) {
	s.history.Push(newSnapshot(&s.board, s.turn))
	s.board.squares[to.Row][to.Col] = s.board.squares[from.Row][from.Col]
	s.board.squares[from.Row][from.Col] = nil
	s.turn = s.turn.Opposite()
}

// Move validates and applies a move in one call. It fails with ErrNoPiece,
// ErrNotYourTurn or ErrIllegalMove and leaves the session untouched in that
// case. Any pending selection is cleared on success.
func (s *Session) Move(from, to Position) error {
	if !from.Valid() {
		return fmt.Errorf("move from %+v: %w", from, ErrOutOfRange)
	}
	if !to.Valid() {
		return fmt.Errorf("move to %+v: %w", to, ErrOutOfRange)
	}
	piece := s.board.at(from)
	if piece == nil {
		return ErrNoPiece
	}
	if piece.Color != s.turn {
		return ErrNotYourTurn
	}
	if !s.IsLegalMove(from, to) {
		return fmt.Errorf("%s %s-%s: %w", piece, from, to, ErrIllegalMove)
	}
	s.ApplyMove(from, to)
	s.selected = nil
	return nil
}

// Undo reinstates the state from before the last executed move. It reports
// false when there is nothing to undo.
func (s *Session) Undo() bool {
	snap, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.board = snap.Board()
	s.turn = snap.Turn()
	s.selected = nil
	return true
}

// SelectSquare handles a click on a square.
//
// With nothing selected, a piece of the side to move becomes selected and
// any other square is ignored. With a selection, clicking the same square
// deselects, a legal destination executes the move, and anything else
// (another own piece included) drops the selection without selecting anew.
func (s *Session) SelectSquare(row, col int) (SelectionResult, error) {
	pos := Position{Row: row, Col: col}
	if !pos.Valid() {
		return NoOp, fmt.Errorf("select (%d,%d): %w", row, col, ErrOutOfRange)
	}

	if s.selected == nil {
		if p := s.board.at(pos); p != nil && p.Color == s.turn {
			s.selected = &pos
			return Selected, nil
		}
		return NoOp, nil
	}

	from := *s.selected
	s.selected = nil
	switch {
	case from == pos:
		return Deselected, nil
	case s.IsLegalMove(from, pos):
		s.ApplyMove(from, pos)
		return MoveApplied, nil
	default:
		return MoveRejected, nil
	}
}
