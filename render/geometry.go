// Package render paints game frames onto a pixel display.
package render

import "fmt"

// Geometry sizes the playfield to a logical screen: square blocks as large
// as a 10x20 board allows, and as many columns and rows of them as fit
// above the reserved control area.
type Geometry struct {
	Width, Height int // logical screen size in pixels
	Reserved      int // control area height at the bottom
	Block         int
	Cols, Rows    int
	OffsetX       int
}

func NewGeometry(width, height, reserved int) (Geometry, error) {
	avail := height - reserved
	block := min(width/10, avail/20)
	if block <= 0 {
		return Geometry{}, fmt.Errorf("screen %dx%d with %dpx of controls is too small for a board", width, height, reserved)
	}
	cols := width / block
	return Geometry{
		Width:    width,
		Height:   height,
		Reserved: reserved,
		Block:    block,
		Cols:     cols,
		Rows:     avail / block,
		OffsetX:  (width - cols*block) / 2,
	}, nil
}

// Cell returns the logical pixel origin of board cell x, y.
func (g Geometry) Cell(x, y int) (px, py int) {
	return g.OffsetX + x*g.Block, y * g.Block
}

// Playfield returns the logical rectangle covered by the board.
func (g Geometry) Playfield() (x, y, w, h int) {
	return g.OffsetX, 0, g.Cols * g.Block, g.Rows * g.Block
}
