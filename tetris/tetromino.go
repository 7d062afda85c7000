package tetris

import "math/rand/v2"

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	O Shape = iota
	I
	L
	J
	T
	Z
	S

	shapes = 7
)

// Offset is a cell position relative to the piece origin.
type Offset struct{ X, Y int }

// Point is an absolute board position.
type Point struct{ X, Y int }

/*
Every shape fits a 4 wide, 2 tall box with the origin on the top-left cell.

.	O		I			L		J		T		Z		S

0	O O .	O O O O		O . .	. . O	. O .	O O .	. O O

1	O O .	. . . .		O O O	O O O	O O O	. O O	O O .
*/
var catalog = [shapes][4]Offset{
	O: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	I: {{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	L: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	J: {{2, 0}, {0, 1}, {1, 1}, {2, 1}},
	T: {{1, 0}, {0, 1}, {1, 1}, {2, 1}},
	Z: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	S: {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
}

var shapeNames = [shapes]string{O: "O", I: "I", L: "L", J: "J", T: "T", Z: "Z", S: "S"}

// Offsets returns a copy of the shape's cell offsets.
func (s Shape) Offsets() [4]Offset {
	return catalog[s]
}

func (s Shape) String() string {
	if int(s) >= shapes {
		return "?"
	}
	return shapeNames[s]
}

// Shapes lists the catalog in a stable order.
func Shapes() []Shape {
	return []Shape{O, I, L, J, T, Z, S}
}

// Piece is the falling tetromino. Only its origin ever changes.
type Piece struct {
	Shape Shape
	X, Y  int
	Color Color
}

// Cells returns the board positions the piece covers.
func (p Piece) Cells() [4]Point {
	var out [4]Point
	for i, o := range catalog[p.Shape] {
		out[i] = Point{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return out
}

// Moved returns the piece translated by dx, dy.
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// spawn drafts a random shape and color at the top center of a board
// width cells wide.
func spawn(rng *rand.Rand, width int) Piece {
	return Piece{
		Shape: Shape(rng.IntN(shapes)),
		X:     width/2 - 1,
		Y:     0,
		Color: Color(1 + rng.IntN(Colors)),
	}
}
