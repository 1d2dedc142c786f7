package board

import "testing"

func TestParseSquare(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		file int
		rank int
	}{
		{"a1", true, 0, 1},
		{"h8", true, 7, 8},
		{"e4", true, 4, 4},
		{"i1", false, 0, 0},
		{"a9", false, 0, 0},
		{"a0", false, 0, 0},
		{"A1", false, 0, 0},
		{"e", false, 0, 0},
		{"e44", false, 0, 0},
		{"", false, 0, 0},
	}
	for _, tc := range cases {
		sq, ok := ParseSquare(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseSquare(%q) ok=%v want %v", tc.in, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if sq.File() != tc.file || sq.Rank() != tc.rank {
			t.Fatalf("ParseSquare(%q) = file %d rank %d", tc.in, sq.File(), sq.Rank())
		}
		if sq.String() != tc.in {
			t.Fatalf("String() = %q want %q", sq.String(), tc.in)
		}
	}
}

func TestSquareColors(t *testing.T) {
	for _, c := range []struct {
		sq   string
		dark bool
	}{{"a1", true}, {"h1", false}, {"a8", false}, {"h8", true}, {"e4", false}, {"d4", true}} {
		sq, _ := ParseSquare(c.sq)
		if sq.Dark() != c.dark {
			t.Fatalf("%s dark=%v want %v", c.sq, sq.Dark(), c.dark)
		}
	}
}

func TestPlaceRemoveAndInvalidInput(t *testing.T) {
	b := NewBoard()
	if !b.Place(King, White, "e1") {
		t.Fatalf("place e1 failed")
	}
	if !b.Place(Queen, Black, "e1") {
		t.Fatalf("overwrite e1 failed")
	}
	e1, _ := ParseSquare("e1")
	if got := b.At(e1); got != (Piece{Type: Queen, Color: Black}) {
		t.Fatalf("e1 = %v", got)
	}

	before := b.String()
	for _, bad := range []string{"z1", "e9", "e", "e10", "11"} {
		if b.Place(Rook, White, bad) {
			t.Fatalf("Place(%q) accepted", bad)
		}
		if b.Remove(bad) {
			t.Fatalf("Remove(%q) accepted", bad)
		}
		if b.Highlight(bad) {
			t.Fatalf("Highlight(%q) accepted", bad)
		}
	}
	if b.String() != before || len(b.Highlights()) != 0 {
		t.Fatalf("invalid input mutated the board")
	}

	if !b.Remove("e1") || !b.At(e1).Empty() {
		t.Fatalf("remove e1 failed")
	}
}

func TestClearKeepsHighlights(t *testing.T) {
	b := NewBoard()
	b.Place(Pawn, White, "e2")
	b.Highlight("e2")
	b.Highlight("e2")
	b.Clear()
	if len(b.Pieces()) != 0 {
		t.Fatalf("clear left pieces: %v", b.Pieces())
	}
	hl := b.Highlights()
	if len(hl) != 2 || hl[0].String() != "e2" || hl[1].String() != "e2" {
		t.Fatalf("highlights = %v", hl)
	}
}

func TestSetAllRankMajor(t *testing.T) {
	grid := NewBoard().Grid()
	grid[0][4] = Piece{Type: King, Color: Black}
	grid[7][4] = Piece{Type: King, Color: White}
	grid[6][0] = Piece{Type: Pawn, Color: White}

	b := NewBoard()
	if !b.SetAll(grid) {
		t.Fatalf("SetAll rejected a well formed grid")
	}
	for sq, want := range map[string]Piece{
		"e8": {Type: King, Color: Black},
		"e1": {Type: King, Color: White},
		"a2": {Type: Pawn, Color: White},
	} {
		s, _ := ParseSquare(sq)
		if got := b.At(s); got != want {
			t.Fatalf("%s = %v want %v", sq, got, want)
		}
	}
}

func TestSetAllMalformedClears(t *testing.T) {
	empty := NewBoard().String()
	malformed := []Grid{
		nil,
		make(Grid, 7),
		func() Grid { g := NewBoard().Grid(); g[3] = g[3][:7]; return g }(),
		func() Grid { g := NewBoard().Grid(); return append(g, make([]Piece, 8)) }(),
	}
	for i, grid := range malformed {
		b := NewBoard()
		b.Place(Queen, White, "d1")
		if b.SetAll(grid) {
			t.Fatalf("case %d: malformed grid accepted", i)
		}
		if b.String() != empty {
			t.Fatalf("case %d: board not cleared:\n%s", i, b.String())
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	b.Place(Rook, White, "a1")
	b.Highlight("a1")
	c := b.Clone()
	c.Remove("a1")
	c.Highlight("h8")
	a1, _ := ParseSquare("a1")
	if b.At(a1).Empty() || len(b.Highlights()) != 1 {
		t.Fatalf("clone shares state with original")
	}
}
