package board

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "b"
	}
	return "w"
}

// Perspective selects which side sits at the bottom of the rendered board.
type Perspective = Color

// ParsePerspective accepts w, white, b and black (case-insensitive).
func ParsePerspective(s string) (Perspective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	default:
		return White, fmt.Errorf("unknown perspective %q", s)
	}
}

type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceLetters = [...]string{"", "p", "n", "b", "r", "q", "k"}

func (t PieceType) String() string {
	if int(t) >= len(pieceLetters) {
		return ""
	}
	return pieceLetters[t]
}

// ParsePieceType accepts the single-letter codes p n b r q k in either case.
func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p":
		return Pawn, true
	case "n":
		return Knight, true
	case "b":
		return Bishop, true
	case "r":
		return Rook, true
	case "q":
		return Queen, true
	case "k":
		return King, true
	}
	return NoPieceType, false
}

// Piece is an occupant of a square. The zero value is the empty marker.
type Piece struct {
	Type  PieceType
	Color Color
}

var NoPiece = Piece{}

func (p Piece) Empty() bool { return p.Type == NoPieceType }

// String returns the FEN letter of the piece, upper case for white.
func (p Piece) String() string {
	if p.Empty() {
		return "."
	}
	if p.Color == White {
		return strings.ToUpper(p.Type.String())
	}
	return p.Type.String()
}
