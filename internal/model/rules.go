package model

// IsLegalMove reports whether the piece standing on from may move to to.
// Legality covers movement shape, obstruction and self-capture only; check
// is never evaluated.
//
// The caller guarantees that from holds a piece. An empty or off-board
// source is reported as illegal.
//
// There is no side-to-move parameter: no step of the check depends on it.
// Turn ownership is enforced by Session.Move and Session.SelectSquare.
func IsLegalMove(b *Board, from, to Position) bool {
	if from == to {
		return false
	}
	if !to.Valid() || !from.Valid() {
		return false
	}
	piece := b.at(from)
	if piece == nil {
		return false
	}
	if target := b.at(to); target != nil && target.Color == piece.Color {
		return false
	}

	switch piece.Type {
	case Pawn:
		return isLegalPawnMove(b, piece.Color, from, to)
	case Knight:
		return isLegalKnightMove(from, to)
	case Bishop:
		return isLegalBishopMove(b, from, to)
	case Rook:
		return isLegalRookMove(b, from, to)
	case Queen:
		return isLegalRookMove(b, from, to) || isLegalBishopMove(b, from, to)
	case King:
		return isLegalKingMove(from, to)
	default:
		return false
	}
}

func pawnDirection(c Color) (dir, startRow int) {
	if c == White {
		return -1, 6
	}
	return 1, 1
}

func isLegalPawnMove(b *Board, c Color, from, to Position) bool {
	dir, startRow := pawnDirection(c)
	dRow := to.Row - from.Row
	dCol := to.Col - from.Col

	switch {
	case dCol == 0 && dRow == dir:
		return b.at(to) == nil
	case dCol == 0 && dRow == 2*dir && from.Row == startRow:
		mid := Position{Row: from.Row + dir, Col: from.Col}
		return b.at(mid) == nil && b.at(to) == nil
	case abs(dCol) == 1 && dRow == dir:
		return b.at(to) != nil
	}
	return false
}

func isLegalKnightMove(from, to Position) bool {
	dRow := abs(to.Row - from.Row)
	dCol := abs(to.Col - from.Col)
	return (dRow == 2 && dCol == 1) || (dRow == 1 && dCol == 2)
}

func isLegalBishopMove(b *Board, from, to Position) bool {
	if abs(to.Row-from.Row) != abs(to.Col-from.Col) {
		return false
	}
	return pathIsClear(b, from, to)
}

func isLegalRookMove(b *Board, from, to Position) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}
	return pathIsClear(b, from, to)
}

func isLegalKingMove(from, to Position) bool {
	return abs(to.Row-from.Row) <= 1 && abs(to.Col-from.Col) <= 1
}

// pathIsClear walks the squares strictly between from and to, which must lie
// on one rank, file or diagonal.
func pathIsClear(b *Board, from, to Position) bool {
	stepRow := sign(to.Row - from.Row)
	stepCol := sign(to.Col - from.Col)
	pos := Position{Row: from.Row + stepRow, Col: from.Col + stepCol}
	for pos != to {
		if b.at(pos) != nil {
			return false
		}
		pos = Position{Row: pos.Row + stepRow, Col: pos.Col + stepCol}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
