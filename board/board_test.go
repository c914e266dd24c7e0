package board_test

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"chess-hybrid/board"
)

const startPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func TestParseFENStartPosition(t *testing.T) {
	st, err := board.ParseFEN(startPlacement)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	// Spot checks: a1 white rook, e1 white king, e8 black king, e4 empty.
	if st[0] != 'R' {
		t.Errorf("expected R at a1, got %c", st[0])
	}
	if st[4] != 'K' {
		t.Errorf("expected K at e1, got %c", st[4])
	}
	if st[60] != 'k' {
		t.Errorf("expected k at e8, got %c", st[60])
	}
	if st[28] != board.Empty {
		t.Errorf("expected empty e4, got %c", st[28])
	}
	if st.Occupied() != 32 {
		t.Errorf("expected 32 occupied cells, got %d", st.Occupied())
	}
}

func TestFENRoundTrip(t *testing.T) {
	placements := []string{
		startPlacement,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR",
		"7k/5Q2/6K1/8/8/8/8/8",
		"8/8/8/8/8/8/8/8",
		"r3k2r/8/8/8/8/8/8/R3K2R",
	}
	for _, p := range placements {
		st, err := board.ParseFEN(p)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", p, err)
		}
		if got := st.FEN(); got != p {
			t.Errorf("round trip %q -> %q", p, got)
		}
	}
}

func TestParseFENRejectsBadPiece(t *testing.T) {
	if _, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBXKBNR"); err == nil {
		t.Fatal("expected error for unknown piece letter")
	}
}

func TestFromGameStartPosition(t *testing.T) {
	b := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	st, ctx := board.FromGame(&b)

	want, err := board.ParseFEN(startPlacement)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if st != want {
		t.Fatalf("adapter state mismatch:\n got %s\nwant %s", st.FEN(), want.FEN())
	}

	if !ctx.WhiteToMove {
		t.Error("expected white to move")
	}
	if !ctx.WhiteCastleKingside || !ctx.WhiteCastleQueenside ||
		!ctx.BlackCastleKingside || !ctx.BlackCastleQueenside {
		t.Errorf("expected full castling rights, got %+v", ctx)
	}
}

func TestFromGameContextPartialRights(t *testing.T) {
	b := dragontoothmg.ParseFen("r3k2r/8/8/8/8/8/8/R3K2R b Kq - 0 1")
	_, ctx := board.FromGame(&b)

	if ctx.WhiteToMove {
		t.Error("expected black to move")
	}
	if !ctx.WhiteCastleKingside || ctx.WhiteCastleQueenside {
		t.Errorf("white rights wrong: %+v", ctx)
	}
	if ctx.BlackCastleKingside || !ctx.BlackCastleQueenside {
		t.Errorf("black rights wrong: %+v", ctx)
	}
}
