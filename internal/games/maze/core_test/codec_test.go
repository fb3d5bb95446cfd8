package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
)

const corridor = "5,3\n#####\n#P E#\n#####\n"

func TestDecodeCorridor(t *testing.T) {
	lvl, err := core.Decode(corridor)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if lvl.Width() != 5 || lvl.Height() != 3 {
		t.Errorf("expected 5x3, got %dx%d", lvl.Width(), lvl.Height())
	}
	if lvl.Start() != core.C(1, 1) {
		t.Errorf("start: expected (1,1), got %v", lvl.Start())
	}
	if lvl.Exit() != core.C(3, 1) {
		t.Errorf("exit: expected (3,1), got %v", lvl.Exit())
	}
	if !lvl.ExitOpen() {
		t.Error("exit should be open on a level without coins")
	}
}

func TestDecodeLockedExit(t *testing.T) {
	lvl, err := core.Decode("5,3\n#####\n#PCE#\n#####\n")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if lvl.ExitOpen() {
		t.Error("exit should start locked when coins remain")
	}
	if lvl.TotalCoins() != 1 || lvl.CoinsRemaining() != 1 {
		t.Errorf("expected 1 coin, got total=%d remaining=%d", lvl.TotalCoins(), lvl.CoinsRemaining())
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"empty", "", 1},
		{"header no comma", "53\n#####\n", 1},
		{"header not numbers", "a,b\n#\n", 1},
		{"header zero", "0,3\n", 1},
		{"header leading space", " 5,3\n#####\n#P E#\n#####\n", 1},
		{"header space after comma", "5, 3\n#####\n#P E#\n#####\n", 1},
		{"header plus sign", "+5,3\n#####\n#P E#\n#####\n", 1},
		{"header leading zero", "05,3\n#####\n#P E#\n#####\n", 1},
		{"header overflows int", "99999999999999999999,1\n#\n", 1},
		{"huge width", "1000000000000000,1\n#\n", 2},
		{"huge area", "4611686018427387904,2\n#\n#\n", 2},
		{"no exit", "3,3\n###\n#P#\n###\n", 0},
		{"no start", "3,3\n###\n#E#\n###\n", 0},
		{"two starts", "5,3\n#####\n#PPE#\n#####\n", 3},
		{"two exits", "5,3\n#####\n#PEE#\n#####\n", 3},
		{"short row", "5,3\n#####\n#PE#\n#####\n", 3},
		{"long row", "5,3\n######\n#P E#\n#####\n", 2},
		{"too few rows", "5,3\n#####\n#P E#\n", 0},
		{"too many rows", "5,3\n#####\n#P E#\n#####\n#####\n", 0},
		{"unknown char", "5,3\n#####\n#PXE#\n#####\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.Decode(tt.text)
			if !errors.Is(err, core.ErrMalformedLevel) {
				t.Fatalf("expected ErrMalformedLevel, got %v", err)
			}
			var mErr *core.MalformedLevelError
			if !errors.As(err, &mErr) {
				t.Fatalf("expected *MalformedLevelError, got %T", err)
			}
			if mErr.Line != tt.line {
				t.Errorf("expected line %d, got %d (%v)", tt.line, mErr.Line, err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	texts := []string{
		corridor,
		"5,3\n#####\n#PCE#\n#####\n",
		"7,5\n#######\nP  I  #\n# ### #\n#C   CE\n#######\n",
	}
	for _, text := range texts {
		lvl, err := core.Decode(text)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", text, err)
		}
		if got := core.Encode(lvl); got != text {
			t.Errorf("round trip mismatch:\nwant %q\ngot  %q", text, got)
		}
	}
}

func TestDecodeAcceptsCRLFAndMissingNewline(t *testing.T) {
	crlf := strings.ReplaceAll(corridor, "\n", "\r\n")
	for _, text := range []string{crlf, strings.TrimSuffix(corridor, "\n")} {
		lvl, err := core.Decode(text)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", text, err)
		}
		if got := core.Encode(lvl); got != corridor {
			t.Errorf("expected canonical output %q, got %q", corridor, got)
		}
	}
}

func TestGeneratedRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		m, err := core.Generate(15, 11, seed)
		if err != nil {
			t.Fatalf("seed %d: Generate failed: %v", seed, err)
		}
		if err := m.AddObjects(core.Obstacle, 10); err != nil {
			t.Fatalf("seed %d: AddObjects failed: %v", seed, err)
		}
		if err := m.AddObjects(core.Coin, 5); err != nil {
			t.Fatalf("seed %d: AddObjects failed: %v", seed, err)
		}

		text := m.Encode()
		lvl, err := core.Decode(text)
		if err != nil {
			t.Fatalf("seed %d: Decode failed: %v", seed, err)
		}
		if got := core.Encode(lvl); got != text {
			t.Errorf("seed %d: round trip mismatch", seed)
		}
		if lvl.Count(core.Coin) != 5 || lvl.Count(core.Obstacle) != 10 {
			t.Errorf("seed %d: expected 5 coins and 10 obstacles, got %d and %d",
				seed, lvl.Count(core.Coin), lvl.Count(core.Obstacle))
		}
	}
}
