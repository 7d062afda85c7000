package tetris

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// boardFrom builds a board from rows of digits, '.' being empty.
func boardFrom(rows ...string) *Board {
	b := NewBoard(len(rows[0]), len(rows))
	for y, r := range rows {
		for x, c := range r {
			if c != '.' {
				b.cells[y*b.width+x] = Color(c - '0')
			}
		}
	}
	return b
}

func dump(b *Board) []string {
	out := make([]string, b.Height())
	for y := range b.Height() {
		var sb strings.Builder
		for x := range b.Width() {
			c := b.Cell(x, y)
			if c == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + c))
			}
		}
		out[y] = sb.String()
	}
	return out
}

func TestStack(t *testing.T) {
	t.Run("New tetris starts with empty stack", func(t *testing.T) {
		tetris := NewTestTetris(J)
		for y := range tetris.Board.Height() {
			for x := range tetris.Board.Width() {
				if tetris.Board.IsOccupied(x, y) {
					t.Errorf("Expected cell %d,%d to be empty, got %v", x, y, tetris.Board.Cell(x, y))
				}
			}
		}
	})
}

func TestClearFullLines(t *testing.T) {
	tests := []struct {
		name        string
		board       []string
		want        []string
		wantCleared []int
	}{
		{
			name:  "no full lines",
			board: []string{"....", "1...", "11.1"},
			want:  []string{"....", "1...", "11.1"},
		},
		{
			name:        "bottom line",
			board:       []string{"....", "2...", "1111"},
			want:        []string{"....", "....", "2..."},
			wantCleared: []int{2},
		},
		{
			name:        "non adjacent lines keep the order of the rest",
			board:       []string{"3...", "2222", ".4..", "1111", "..5."},
			want:        []string{"....", "....", "3...", ".4..", "..5."},
			wantCleared: []int{3, 1},
		},
		{
			name:        "adjacent lines",
			board:       []string{"3...", "1111", "2222"},
			want:        []string{"....", "....", "3..."},
			wantCleared: []int{2, 1},
		},
		{
			name:        "every line",
			board:       []string{"1234", "5612"},
			want:        []string{"....", "...."},
			wantCleared: []int{1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := boardFrom(tt.board...)
			cleared := b.ClearFullLines()
			if diff := cmp.Diff(tt.wantCleared, cleared); diff != "" {
				t.Errorf("cleared rows mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, dump(b)); diff != "" {
				t.Errorf("board mismatch (-want +got):\n%s", diff)
			}
			if b.Width() != len(tt.board[0]) || b.Height() != len(tt.board) {
				t.Errorf("board resized to %dx%d", b.Width(), b.Height())
			}
		})
	}
}

func TestClearLineAfterMerge(t *testing.T) {
	// 	.	0 1 2 3 4 5 6 7 8 9
	// 	10	. . . . . 3 . . . .
	// 	18	L 4 4 4 4 4 4 4 4 4
	// 	19	L L L . . . . . . 5
	b := NewBoard(10, 20)
	b.cells[10*10+5] = 3
	for x := 1; x < 10; x++ {
		b.cells[18*10+x] = 4
	}
	b.cells[19*10+9] = 5

	piece := Piece{Shape: L, X: 0, Y: 18, Color: 1}
	if !CanMove(b, piece, 0, 0) {
		t.Fatalf("expected the L to fit")
	}
	b.Merge(piece)
	cleared := b.ClearFullLines()
	if len(cleared) != 1 {
		t.Fatalf("expected 1 cleared line, got %d", len(cleared))
	}

	want := make([]string, 20)
	for y := range want {
		want[y] = ".........."
	}
	want[11] = ".....3...."
	want[19] = "111......5"
	if diff := cmp.Diff(want, dump(b)); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestMergePanics(t *testing.T) {
	tests := []struct {
		name  string
		piece Piece
	}{
		{name: "out of bounds", piece: Piece{Shape: I, X: 8, Y: 0, Color: 1}},
		{name: "above the board", piece: Piece{Shape: O, X: 0, Y: -1, Color: 1}},
		{name: "overlap", piece: Piece{Shape: O, X: 0, Y: 18, Color: 1}},
		{name: "no color", piece: Piece{Shape: O, X: 4, Y: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(10, 20)
			b.cells[19*10] = 2
			defer func() {
				if recover() == nil {
					t.Errorf("expected Merge to panic")
				}
			}()
			b.Merge(tt.piece)
		})
	}
}

func TestIsCollision(t *testing.T) {
	// 		0 1 2 3 4 5 6 7 8 9			0 1 2
	// 0	X X X X X X O X X X		0	X X O
	// 1	X X X X O O O X X X		1	O O O
	// 2	X X X X X C X X X X
	tests := []struct {
		name     string
		dx, dy   int
		wantMove bool
	}{
		{name: "no collision", wantMove: true},
		{name: "stack collision", dy: 1},
		{name: "left bound collision", dx: -5},
		{name: "left bound free", dx: -4, wantMove: true},
		{name: "right bound collision", dx: 4},
		{name: "right bound free", dx: 3, wantMove: true},
		{name: "bottom bound collision", dx: 2, dy: 19},
		{name: "bottom bound free", dx: 2, dy: 18, wantMove: true},
		{name: "above the board is free", dy: -5, wantMove: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tetris := NewTestTetris(J)
			tetris.Board.cells[2*10+5] = 6

			if got := CanMove(tetris.Board, *tetris.Tetromino, tt.dx, tt.dy); got != tt.wantMove {
				t.Errorf("CanMove(%d, %d) = %v, want %v", tt.dx, tt.dy, got, tt.wantMove)
			}
		})
	}
}

func TestCanMoveBounds(t *testing.T) {
	b := NewBoard(10, 20)
	for _, s := range Shapes() {
		for x := -4; x < 14; x++ {
			for y := -3; y < 23; y++ {
				p := Piece{Shape: s, X: x, Y: y, Color: 1}
				outside := false
				for _, c := range p.Cells() {
					if c.X < 0 || c.X >= 10 || c.Y >= 20 {
						outside = true
					}
				}
				if outside && CanMove(b, p, 0, 0) {
					t.Fatalf("%v at %d,%d is outside the board but CanMove is true", s, x, y)
				}
				if !outside && !CanMove(b, p, 0, 0) {
					t.Fatalf("%v at %d,%d fits an empty board but CanMove is false", s, x, y)
				}
			}
		}
	}
}

func TestLineFallsToBottom(t *testing.T) {
	b := NewBoard(10, 20)
	p := Piece{Shape: I, X: 4, Y: 0, Color: 2}
	for i := range 19 {
		if !CanMove(b, p, 0, 1) {
			t.Fatalf("move %d blocked at y=%d", i+1, p.Y)
		}
		p = p.Moved(0, 1)
	}
	if p.Y != 19 {
		t.Errorf("want y=19, got %d", p.Y)
	}
	if CanMove(b, p, 0, 1) {
		t.Errorf("expected the move to y=20 to be blocked")
	}
}

func TestMoveActions(t *testing.T) {
	// Initial state of the test:
	//
	// .	0 1 2 3 4 5 6 7 8 9		.	0 1 2
	// 0	X X X X X X O X X X		0	X X O
	// 1	X X X X O O O X X X		1	O O O
	tests := []struct {
		name         string
		action       func(g *Tetris)
		updateStack  func(g *Tetris)
		wantLocation []int // x, y
	}{
		{
			name:         "Move left unblocked",
			action:       func(g *Tetris) { g.left() },
			wantLocation: []int{3, 0},
		},
		{
			name:   "Move left blocked",
			action: func(g *Tetris) { g.left() },
			updateStack: func(g *Tetris) {
				g.Board.cells[1*10+3] = 1
			},
			wantLocation: []int{4, 0},
		},
		{
			name:         "Move right unblocked",
			action:       func(g *Tetris) { g.right() },
			wantLocation: []int{5, 0},
		},
		{
			name:   "Move right blocked",
			action: func(g *Tetris) { g.right() },
			updateStack: func(g *Tetris) {
				g.Board.cells[0*10+7] = 1
			},
			wantLocation: []int{4, 0},
		},
		{
			name:         "Move down unblocked",
			action:       func(g *Tetris) { g.down() },
			wantLocation: []int{4, 1},
		},
		{
			name:   "Move down blocked",
			action: func(g *Tetris) { g.down() },
			updateStack: func(g *Tetris) {
				g.Board.cells[2*10+4] = 1
			},
			wantLocation: []int{4, 0},
		},
		{
			name:         "Drop moves down until blocked",
			action:       func(g *Tetris) { g.drop() },
			wantLocation: []int{4, 18},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tetris := NewTestTetris(J)
			if tt.updateStack != nil {
				tt.updateStack(tetris)
			}
			tt.action(tetris)
			if tetris.Tetromino.X != tt.wantLocation[0] {
				t.Errorf("wanted tetromino's X to be %d, got %d", tt.wantLocation[0], tetris.Tetromino.X)
			}
			if tetris.Tetromino.Y != tt.wantLocation[1] {
				t.Errorf("wanted tetromino's Y to be %d, got %d", tt.wantLocation[1], tetris.Tetromino.Y)
			}
		})
	}
}

func TestDropMatchesStepping(t *testing.T) {
	for _, s := range Shapes() {
		t.Run(s.String(), func(t *testing.T) {
			t.Parallel()
			stepped := NewTestTetris(s)
			dropped := NewTestTetris(s)
			for _, tt := range []*Tetris{stepped, dropped} {
				tt.Board.cells[15*10+3] = 2
				tt.Board.cells[17*10+6] = 2
			}
			for CanMove(stepped.Board, *stepped.Tetromino, 0, 1) {
				stepped.down()
			}
			dropped.drop()
			if stepped.Tetromino.Y != dropped.Tetromino.Y {
				t.Errorf("stepping rested at %d, drop at %d", stepped.Tetromino.Y, dropped.Tetromino.Y)
			}
		})
	}
}

func TestToStack(t *testing.T) {
	tetris := NewTestTetris(I)
	for x := range 10 {
		if x < 4 || x > 7 {
			tetris.Board.cells[19*10+x] = 3
		}
	}
	tetris.drop()
	cleared := tetris.toStack()
	if fmt.Sprint(cleared) != "[19]" {
		t.Errorf("want [19] cleared, got %v", cleared)
	}
	if tetris.Tetromino != nil {
		t.Errorf("expected the tetromino to be merged")
	}
	if tetris.LinesClear != 1 {
		t.Errorf("want 1 line clear, got %d", tetris.LinesClear)
	}
	for x := range 10 {
		if tetris.Board.IsOccupied(x, 19) {
			t.Errorf("expected %d,19 to be empty after the clear", x)
		}
	}
}

func TestSpawn(t *testing.T) {
	g, _ := NewTestGame(newTetris(10, 20))
	seen := map[Shape]bool{}
	for range 500 {
		p := spawn(g.rng, 10)
		if p.X != 4 || p.Y != 0 {
			t.Fatalf("spawned at %d,%d, want 4,0", p.X, p.Y)
		}
		if p.Color < 1 || p.Color > Colors {
			t.Fatalf("spawned with color %d", p.Color)
		}
		seen[p.Shape] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected every shape to be drafted, got %v", seen)
	}
}

func TestCatalogIsReadOnly(t *testing.T) {
	o := T.Offsets()
	o[0] = Offset{9, 9}
	if T.Offsets()[0] == (Offset{9, 9}) {
		t.Errorf("catalog was mutated through Offsets")
	}
}

func TestColor(t *testing.T) {
	tetris := NewTestTetris(O)
	tetris.Board.cells[19*10] = 4
	if got := tetris.Color(4, 0); got != 1 {
		t.Errorf("want tetromino color 1, got %d", got)
	}
	if got := tetris.Color(0, 19); got != 4 {
		t.Errorf("want board color 4, got %d", got)
	}
	if got := tetris.Color(0, 0); got != Empty {
		t.Errorf("want empty, got %d", got)
	}
}
