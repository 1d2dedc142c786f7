package board

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

func fromChessPiece(p nchess.Piece) Piece {
	if p == nchess.NoPiece {
		return NoPiece
	}
	var t PieceType
	switch p.Type() {
	case nchess.King:
		t = King
	case nchess.Queen:
		t = Queen
	case nchess.Rook:
		t = Rook
	case nchess.Bishop:
		t = Bishop
	case nchess.Knight:
		t = Knight
	case nchess.Pawn:
		t = Pawn
	default:
		return NoPiece
	}
	c := White
	if p.Color() == nchess.Black {
		c = Black
	}
	return Piece{Type: t, Color: c}
}

func fromChessSquare(sq nchess.Square) (Square, bool) {
	return NewSquare(int(sq.File()), int(sq.Rank())+1)
}

// FromChessBoard copies the placement of a chess library board.
func FromChessBoard(cb *nchess.Board) *Board {
	b := NewBoard()
	if cb == nil {
		return b
	}
	for sq, p := range cb.SquareMap() {
		if s, ok := fromChessSquare(sq); ok {
			b.squares[s] = fromChessPiece(p)
		}
	}
	return b
}

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN builds a board from a FEN string; an empty string yields the start position.
func FromFEN(fen string) (*Board, error) {
	fen = strings.TrimSpace(fen)
	if fen == "" {
		fen = StartFEN
	}
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}
	game := nchess.NewGame(opt)
	return FromChessBoard(game.Position().Board()), nil
}

// GameSnapshots returns one board per position of the game, in order. Every snapshot after
// the first highlights the from and to squares of the move that produced it.
func GameSnapshots(game *nchess.Game) []*Board {
	if game == nil {
		return nil
	}
	positions := game.Positions()
	moves := game.Moves()
	out := make([]*Board, 0, len(positions))
	for i, pos := range positions {
		b := FromChessBoard(pos.Board())
		if i > 0 && i-1 < len(moves) {
			mv := moves[i-1]
			if s, ok := fromChessSquare(mv.S1()); ok {
				b.highlights = append(b.highlights, s)
			}
			if s, ok := fromChessSquare(mv.S2()); ok {
				b.highlights = append(b.highlights, s)
			}
		}
		out = append(out, b)
	}
	return out
}

// ReplayUCI plays UCI moves from the standard start position, or from fen when non-empty.
func ReplayUCI(fen string, moves []string) (*nchess.Game, error) {
	var game *nchess.Game
	if strings.TrimSpace(fen) != "" {
		opt, err := nchess.FEN(strings.TrimSpace(fen))
		if err != nil {
			return nil, fmt.Errorf("parse fen: %w", err)
		}
		game = nchess.NewGame(opt)
	} else {
		game = nchess.NewGame()
	}
	notation := nchess.UCINotation{}
	for _, raw := range moves {
		mv := strings.ToLower(strings.TrimSpace(raw))
		if mv == "" {
			continue
		}
		move, err := notation.Decode(game.Position(), mv)
		if err != nil {
			return nil, fmt.Errorf("decode move %s: %w", mv, err)
		}
		if err := game.Move(move, nil); err != nil {
			return nil, fmt.Errorf("apply move %s: %w", mv, err)
		}
	}
	return game, nil
}
