package board

import "strings"

const files = "abcdefgh"

// Square is a board position encoded as (rank-1)*8 + fileIndex.
type Square uint8

// NumSquares is the fixed size of the board domain.
const NumSquares = 64

// NewSquare builds a square from a 0-based file index and a 1-based rank.
func NewSquare(fileIndex, rank int) (Square, bool) {
	if fileIndex < 0 || fileIndex > 7 || rank < 1 || rank > 8 {
		return 0, false
	}
	return Square((rank-1)*8 + fileIndex), true
}

// ParseSquare accepts exactly two characters: a file in a..h followed by a rank in 1..8.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return 0, false
	}
	f, r := s[0], s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return 0, false
	}
	return NewSquare(int(f-'a'), int(r-'0'))
}

// File returns the 0-based file index.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the 1-based rank.
func (s Square) Rank() int { return int(s)/8 + 1 }

// Dark reports whether the square is a dark square (a1 is dark).
func (s Square) Dark() bool { return (s.File()+s.Rank())%2 == 1 }

func (s Square) String() string {
	if s >= NumSquares {
		return "??"
	}
	return string([]byte{files[s.File()], byte('0' + s.Rank())})
}

// FileLetter returns the file letter of a 0-based file index.
func FileLetter(fileIndex int) string {
	if fileIndex < 0 || fileIndex > 7 {
		return ""
	}
	return files[fileIndex : fileIndex+1]
}

// ParseSquares parses a comma or space separated list, dropping invalid tokens.
func ParseSquares(raw string) []Square {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	out := make([]Square, 0, len(fields))
	for _, f := range fields {
		if sq, ok := ParseSquare(strings.ToLower(strings.TrimSpace(f))); ok {
			out = append(out, sq)
		}
	}
	return out
}
