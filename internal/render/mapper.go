package render

import (
	"image"

	"github.com/park285/boardframe/internal/board"
)

// Origin returns the top-left pixel of a square. White perspective puts a1 bottom-left,
// black perspective rotates the board by 180 degrees.
func Origin(fileIndex, rank int, perspective board.Perspective, side int) image.Point {
	if perspective == board.Black {
		return image.Point{X: side * (7 - fileIndex), Y: side * (rank - 1)}
	}
	return image.Point{X: side * fileIndex, Y: side * (8 - rank)}
}

// SquareOrigin is Origin for a board.Square.
func SquareOrigin(sq board.Square, perspective board.Perspective, side int) image.Point {
	return Origin(sq.File(), sq.Rank(), perspective, side)
}

func squareRect(sq board.Square, perspective board.Perspective, side int) image.Rectangle {
	o := SquareOrigin(sq, perspective, side)
	return image.Rect(o.X, o.Y, o.X+side, o.Y+side)
}

func containsSquare(list []board.Square, sq board.Square) bool {
	for _, s := range list {
		if s == sq {
			return true
		}
	}
	return false
}
