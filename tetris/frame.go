package tetris

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// CellUpdate is a cell to repaint with the color it now shows.
type CellUpdate struct {
	X, Y  int
	Color Color
}

// Frame describes what changed since the previous frame. A Full frame asks
// for the whole screen to be redrawn and carries every board cell.
type Frame struct {
	State State
	Full  bool
	Cells []CellUpdate
	Lines int
}

// Empty reports whether there is nothing to repaint.
func (f Frame) Empty() bool {
	return !f.Full && len(f.Cells) == 0
}

// damage collects dirty cells between two frames, keyed by y*width+x.
type damage struct {
	width int
	full  bool
	dirty *intmap.Map[int, struct{}]
}

func newDamage(width int) *damage {
	return &damage{width: width, dirty: intmap.New[int, struct{}](64)}
}

func (d *damage) cell(x, y int) {
	if y < 0 {
		return
	}
	d.dirty.Put(y*d.width+x, struct{}{})
}

func (d *damage) piece(p *Piece) {
	if p == nil {
		return
	}
	for _, c := range p.Cells() {
		d.cell(c.X, c.Y)
	}
}

// rows marks every row from 0 to bottom, inclusive.
func (d *damage) rows(bottom int) {
	for y := 0; y <= bottom; y++ {
		for x := range d.width {
			d.cell(x, y)
		}
	}
}

func (d *damage) all() {
	d.full = true
	d.dirty.Clear()
}

// drain resolves the damage against t and resets it.
func (d *damage) drain(t *Tetris) Frame {
	f := Frame{State: t.State, Full: d.full, Lines: t.LinesClear}
	if d.full {
		b := t.Board
		f.Cells = make([]CellUpdate, 0, b.Width()*b.Height())
		for y := range b.Height() {
			for x := range b.Width() {
				f.Cells = append(f.Cells, CellUpdate{X: x, Y: y, Color: t.Color(x, y)})
			}
		}
	} else if d.dirty.Len() > 0 {
		keys := make([]int, 0, d.dirty.Len())
		d.dirty.ForEach(func(k int, _ struct{}) bool {
			keys = append(keys, k)
			return true
		})
		slices.Sort(keys)
		f.Cells = make([]CellUpdate, 0, len(keys))
		for _, k := range keys {
			x, y := k%d.width, k/d.width
			f.Cells = append(f.Cells, CellUpdate{X: x, Y: y, Color: t.Color(x, y)})
		}
	}
	d.full = false
	d.dirty.Clear()
	return f
}
