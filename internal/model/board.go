package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const BoardSize = 8

type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"pawn", "knight", "bishop", "rook", "queen", "king"}

func (p PieceType) String() string {
	if int(p) < len(pieceTypeNames) {
		return pieceTypeNames[p]
	}
	return ""
}

// Notation returns the SAN letter of the piece type; pawns have none.
func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func (p PieceType) MarshalText() ([]byte, error) {
	s := p.String()
	if s == "" {
		return nil, fmt.Errorf("unknown piece type %d", p)
	}
	return []byte(s), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	for i, name := range pieceTypeNames {
		if name == string(text) {
			*p = PieceType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", text)
}

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return ""
}

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) MarshalText() ([]byte, error) {
	s := c.String()
	if s == "" {
		return nil, fmt.Errorf("unknown color %d", c)
	}
	return []byte(s), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Type.String()
}

// Symbol returns the FEN letter of the piece: upper case for White.
func (p Piece) Symbol() string {
	sym := p.Type.Notation()
	if p.Type == Pawn {
		sym = "P"
	}
	if p.Color == Black {
		return strings.ToLower(sym)
	}
	return sym
}

// Position addresses a square; row 0 is Black's back rank, row 7 is White's.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Notation returns the algebraic name of the square, e.g. "e2" for {6, 4}.
func (p Position) Notation() string {
	if !p.Valid() {
		return ""
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, BoardSize-p.Row)
}

func (p Position) String() string {
	return p.Notation()
}

// ParsePosition parses an algebraic square name such as "e4".
func ParsePosition(n string) (Position, error) {
	n = strings.ToLower(strings.TrimSpace(n))
	if len(n) != 2 {
		return Position{}, ErrInvalidNotation
	}
	col := int(n[0]) - 'a'
	rank := int(n[1]) - '0'
	pos := Position{Row: BoardSize - rank, Col: col}
	if rank < 1 || rank > BoardSize || !pos.Valid() {
		return Position{}, ErrInvalidNotation
	}
	return pos, nil
}

// UnmarshalJSON accepts either {"row":6,"col":4} or "e2".
func (p *Position) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var n string
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		pos, err := ParsePosition(n)
		if err != nil {
			return err
		}
		*p = pos
		return nil
	}
	type plain Position
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Position(v)
	return nil
}

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is an 8x8 grid of optional pieces. The zero value is an empty board.
// Stored pieces are never shared with callers: Get and Set copy.
type Board struct {
	squares [BoardSize][BoardSize]*Piece
}

func NewBoard() *Board {
	b := &Board{}
	b.Initialize()
	return b
}

// Initialize resets the board to the standard starting position.
func (b *Board) Initialize() {
	b.squares = [BoardSize][BoardSize]*Piece{}
	for col, t := range backRank {
		b.squares[0][col] = &Piece{Type: t, Color: Black}
		b.squares[7][col] = &Piece{Type: t, Color: White}
		b.squares[1][col] = &Piece{Type: Pawn, Color: Black}
		b.squares[6][col] = &Piece{Type: Pawn, Color: White}
	}
}

func (b *Board) Get(row, col int) (*Piece, error) {
	if !(Position{Row: row, Col: col}).Valid() {
		return nil, fmt.Errorf("get (%d,%d): %w", row, col, ErrOutOfRange)
	}
	return copyPiece(b.squares[row][col]), nil
}

func (b *Board) Set(row, col int, p *Piece) error {
	if !(Position{Row: row, Col: col}).Valid() {
		return fmt.Errorf("set (%d,%d): %w", row, col, ErrOutOfRange)
	}
	b.squares[row][col] = copyPiece(p)
	return nil
}

// at is the unchecked accessor used by the rules; pos must be valid.
func (b *Board) at(pos Position) *Piece {
	return b.squares[pos.Row][pos.Col]
}

func (b Board) Clone() Board {
	var c Board
	for row := range b.squares {
		for col, p := range b.squares[row] {
			c.squares[row][col] = copyPiece(p)
		}
	}
	return c
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	n := 0
	for row := range b.squares {
		for _, p := range b.squares[row] {
			if p != nil {
				n++
			}
		}
	}
	return n
}

// Equal reports whether both boards hold the same piece on every square.
func (b *Board) Equal(o *Board) bool {
	for row := range b.squares {
		for col, p := range b.squares[row] {
			q := o.squares[row][col]
			if (p == nil) != (q == nil) || (p != nil && *p != *q) {
				return false
			}
		}
	}
	return true
}

func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, BoardSize)
	for row := range b.squares {
		rows[row] = b.squares[row][:]
	}
	return json.Marshal(rows)
}

func copyPiece(p *Piece) *Piece {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
