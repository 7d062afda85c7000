package tetris

import "fmt"

// Color is the content of a board cell. Empty is the background, pieces
// use 1 through Colors.
type Color uint8

const (
	Empty  Color = 0
	Colors       = 6
)

// Board is the playfield: a fixed grid of landed cells.
// Columns are 0 > width-1 left to right and represent the X axis.
// Rows are 0 > height-1 top to bottom and represent the Y axis.
type Board struct {
	width, height int
	cells         []Color
}

func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("tetris: invalid board size %dx%d", width, height))
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Cell returns the color stored at x, y.
func (b *Board) Cell(x, y int) Color {
	return b.cells[b.index(x, y)]
}

// IsOccupied reports whether the cell holds a landed block.
// Bounds are the caller's responsibility, see CanMove.
func (b *Board) IsOccupied(x, y int) bool {
	return b.cells[b.index(x, y)] != Empty
}

// Merge writes the piece color into every cell it covers. The placement must
// have been validated with CanMove first; anything else corrupts the board.
func (b *Board) Merge(p Piece) {
	if p.Color == Empty || p.Color > Colors {
		panic(fmt.Sprintf("tetris: merge of piece with invalid color %d", p.Color))
	}
	for _, c := range p.Cells() {
		if !b.inside(c.X, c.Y) {
			panic(fmt.Sprintf("tetris: merge out of bounds at %d,%d", c.X, c.Y))
		}
		if b.IsOccupied(c.X, c.Y) {
			panic(fmt.Sprintf("tetris: merge over occupied cell %d,%d", c.X, c.Y))
		}
	}
	for _, c := range p.Cells() {
		b.cells[b.index(c.X, c.Y)] = p.Color
	}
}

// ClearFullLines removes every full row in a single pass and returns the
// indices the removed rows had before the call, bottom row first.
func (b *Board) ClearFullLines() []int {
	var cleared []int
	write := b.height - 1
	for y := b.height - 1; y >= 0; y-- {
		if b.full(y) {
			cleared = append(cleared, y)
			continue
		}
		if write != y {
			copy(b.row(write), b.row(y))
		}
		write--
	}
	for y := write; y >= 0; y-- {
		clear(b.row(y))
	}
	return cleared
}

// Reset empties every cell.
func (b *Board) Reset() {
	clear(b.cells)
}

func (b *Board) Copy() *Board {
	if b == nil {
		return nil
	}
	c := &Board{width: b.width, height: b.height, cells: make([]Color, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

func (b *Board) full(y int) bool {
	for _, c := range b.row(y) {
		if c == Empty {
			return false
		}
	}
	return true
}

func (b *Board) row(y int) []Color {
	return b.cells[y*b.width : (y+1)*b.width]
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) index(x, y int) int {
	if !b.inside(x, y) {
		panic(fmt.Sprintf("tetris: cell %d,%d outside %dx%d board", x, y, b.width, b.height))
	}
	return y*b.width + x
}
