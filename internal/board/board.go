package board

import "strings"

// Grid is a rank-major 8x8 board description: row 0 is rank 8, column 0 is file a.
// NoPiece marks an empty square.
type Grid [][]Piece

// Board holds all 64 squares plus an ordered highlight list.
// Highlights keep insertion order and may contain duplicates.
type Board struct {
	squares    [NumSquares]Piece
	highlights []Square
}

func NewBoard() *Board {
	return &Board{}
}

// FromGrid builds a board from a grid; a malformed grid yields an empty board.
func FromGrid(grid Grid) *Board {
	b := NewBoard()
	b.SetAll(grid)
	return b
}

// Place puts a piece on square, replacing any occupant. Invalid input leaves the board unchanged.
func (b *Board) Place(t PieceType, c Color, square string) bool {
	sq, ok := ParseSquare(square)
	if !ok || t == NoPieceType || t > King || c > Black {
		return false
	}
	b.squares[sq] = Piece{Type: t, Color: c}
	return true
}

func (b *Board) Remove(square string) bool {
	sq, ok := ParseSquare(square)
	if !ok {
		return false
	}
	b.squares[sq] = NoPiece
	return true
}

// Clear empties every square. Highlights are kept.
func (b *Board) Clear() {
	b.squares = [NumSquares]Piece{}
}

func (b *Board) Highlight(square string) bool {
	sq, ok := ParseSquare(square)
	if !ok {
		return false
	}
	b.highlights = append(b.highlights, sq)
	return true
}

// SetAll replaces every square from grid. Anything other than exactly 8 rows of 8
// entries clears the board instead and reports false.
func (b *Board) SetAll(grid Grid) bool {
	if len(grid) != 8 {
		b.Clear()
		return false
	}
	for _, row := range grid {
		if len(row) != 8 {
			b.Clear()
			return false
		}
	}
	for i, row := range grid {
		for j, p := range row {
			sq, _ := NewSquare(j, 8-i)
			if p.Type > King || p.Color > Black {
				p = NoPiece
			}
			b.squares[sq] = p
		}
	}
	return true
}

func (b *Board) At(sq Square) Piece {
	if sq >= NumSquares {
		return NoPiece
	}
	return b.squares[sq]
}

// Highlights returns a copy of the highlight list in insertion order.
func (b *Board) Highlights() []Square {
	return append([]Square(nil), b.highlights...)
}

// Highlighted reports whether sq appears in the highlight list.
func (b *Board) Highlighted(sq Square) bool {
	for _, h := range b.highlights {
		if h == sq {
			return true
		}
	}
	return false
}

// Grid exports the placement in the same layout SetAll consumes.
func (b *Board) Grid() Grid {
	grid := make(Grid, 8)
	for i := range grid {
		grid[i] = make([]Piece, 8)
		for j := range grid[i] {
			sq, _ := NewSquare(j, 8-i)
			grid[i][j] = b.squares[sq]
		}
	}
	return grid
}

func (b *Board) Clone() *Board {
	c := &Board{squares: b.squares}
	c.highlights = b.Highlights()
	return c
}

// Pieces returns the distinct pieces present on the board.
func (b *Board) Pieces() []Piece {
	seen := make(map[Piece]struct{})
	var out []Piece
	for _, p := range b.squares {
		if p.Empty() {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// String renders the board as eight text lines from rank 8 down to rank 1.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		for file := 0; file < 8; file++ {
			sq, _ := NewSquare(file, rank)
			sb.WriteString(b.squares[sq].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
