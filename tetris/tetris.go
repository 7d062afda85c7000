// Package tetris contains the logic of the game: the board, the pieces,
// the placement rule and the session state machine. It performs no I/O.
package tetris

// State is the session phase.
type State int

const (
	Title State = iota
	Running
	GameOver
)

func (s State) String() string {
	switch s {
	case Title:
		return "title"
	case Running:
		return "running"
	case GameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Tetris is the playable state of a session. Game owns it; Read hands out
// copies to anyone else.
type Tetris struct {
	Board      *Board
	Tetromino  *Piece // nil outside Running
	State      State
	LinesClear int
}

func newTetris(width, height int) *Tetris {
	return &Tetris{Board: NewBoard(width, height)}
}

// CanMove reports whether p translated by dx, dy fits the board.
//
// 		0 1 2 3 4 5 6 7 8 9
// -1	. . . . O . . . . .		cells above the board are always free
// 0	. . . O O O . . . .
// 1	. . . . . . . . . .
//
// It is the only placement rule: gravity, player moves, hard drop and the
// spawn check all go through it.
func CanMove(b *Board, p Piece, dx, dy int) bool {
	for _, c := range p.Cells() {
		x, y := c.X+dx, c.Y+dy
		if x < 0 || x >= b.Width() || y >= b.Height() {
			return false
		}
		if y >= 0 && b.IsOccupied(x, y) {
			return false
		}
	}
	return true
}

func (t *Tetris) canMove(dx, dy int) bool {
	return t.Tetromino != nil && CanMove(t.Board, *t.Tetromino, dx, dy)
}

// move translates the current tetromino when the rule allows it.
func (t *Tetris) move(dx, dy int) bool {
	if !t.canMove(dx, dy) {
		return false
	}
	t.Tetromino.X += dx
	t.Tetromino.Y += dy
	return true
}

func (t *Tetris) left() bool  { return t.move(-1, 0) }
func (t *Tetris) right() bool { return t.move(1, 0) }
func (t *Tetris) down() bool  { return t.move(0, 1) }

// drop moves the tetromino down until it rests and returns the rows travelled.
func (t *Tetris) drop() int {
	var n int
	for t.down() {
		n++
	}
	return n
}

// toStack merges the tetromino into the board and clears full lines.
// It returns the removed row indices.
func (t *Tetris) toStack() []int {
	t.Board.Merge(*t.Tetromino)
	t.Tetromino = nil
	cleared := t.Board.ClearFullLines()
	t.LinesClear += len(cleared)
	return cleared
}

func (t *Tetris) copy() *Tetris {
	c := &Tetris{
		Board:      t.Board.Copy(),
		State:      t.State,
		LinesClear: t.LinesClear,
	}
	if t.Tetromino != nil {
		p := *t.Tetromino
		c.Tetromino = &p
	}
	return c
}

// Color returns what a renderer should paint at x, y: the falling tetromino
// over the landed cells.
func (t *Tetris) Color(x, y int) Color {
	if t.Tetromino != nil {
		for _, c := range t.Tetromino.Cells() {
			if c.X == x && c.Y == y {
				return t.Tetromino.Color
			}
		}
	}
	return t.Board.Cell(x, y)
}
