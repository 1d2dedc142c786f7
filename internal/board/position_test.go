package board

import "testing"

func TestFromFENStartPosition(t *testing.T) {
	b, err := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	want := "rnbqkbnr\npppppppp\n........\n........\n........\n........\nPPPPPPPP\nRNBQKBNR\n"
	if got := b.String(); got != want {
		t.Fatalf("board =\n%s", got)
	}
}

func TestFromFENEmptyIsStart(t *testing.T) {
	empty, err := FromFEN("  ")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	start, _ := FromFEN(StartFEN)
	if empty.String() != start.String() {
		t.Fatalf("empty fen should give the start position")
	}
}

func TestFromFENInvalid(t *testing.T) {
	if _, err := FromFEN("not a fen"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGameSnapshotsHighlightLastMove(t *testing.T) {
	game, err := ReplayUCI("", []string{"e2e4", "e7e5", "g1f3"})
	if err != nil {
		t.Fatalf("ReplayUCI: %v", err)
	}
	snaps := GameSnapshots(game)
	if len(snaps) != 4 {
		t.Fatalf("snapshots = %d want 4", len(snaps))
	}
	if len(snaps[0].Highlights()) != 0 {
		t.Fatalf("start position should not be highlighted")
	}
	hl := snaps[3].Highlights()
	if len(hl) != 2 || hl[0].String() != "g1" || hl[1].String() != "f3" {
		t.Fatalf("last snapshot highlights = %v", hl)
	}
	f3, _ := ParseSquare("f3")
	if got := snaps[3].At(f3); got != (Piece{Type: Knight, Color: White}) {
		t.Fatalf("f3 = %v", got)
	}
}

func TestReplayUCIRejectsIllegalMove(t *testing.T) {
	if _, err := ReplayUCI("", []string{"e2e5"}); err == nil {
		t.Fatalf("expected error for illegal move")
	}
}

func TestOpeningNamesKnownLine(t *testing.T) {
	game, err := ReplayUCI("", []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"})
	if err != nil {
		t.Fatalf("ReplayUCI: %v", err)
	}
	code, title := Opening(game)
	if code == "" || title == "" {
		t.Fatalf("expected an ECO match, got %q %q", code, title)
	}
	if code, _ := Opening(nil); code != "" {
		t.Fatalf("nil game should not match")
	}
}
