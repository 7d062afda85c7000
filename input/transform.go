// Package input turns raw touch panel readings into game actions.
//
// Coordinates come in two spaces: panel space, the pixels the display and
// the touch controller report, and logical space, the frame the game is laid
// out in. Transform converts between them and is shared with the renderer so
// drawing and hit testing always agree.
package input

import "fmt"

type Orientation int

const (
	// Landscape lays the game out on the panel as reported.
	Landscape Orientation = iota
	// Portrait rotates the logical frame 90 degrees clockwise on the panel.
	Portrait
)

func (o Orientation) String() string {
	switch o {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "landscape":
		return Landscape, nil
	case "portrait":
		return Portrait, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Transform maps between logical and panel coordinates.
type Transform struct {
	Orientation Orientation
	PanelWidth  int
	PanelHeight int
}

// Size returns the logical width and height.
func (t Transform) Size() (w, h int) {
	if t.Orientation == Portrait {
		return t.PanelHeight, t.PanelWidth
	}
	return t.PanelWidth, t.PanelHeight
}

// ToPanel converts a logical point to panel coordinates.
func (t Transform) ToPanel(x, y int) (int, int) {
	if t.Orientation == Portrait {
		return y, t.PanelHeight - 1 - x
	}
	return x, y
}

// FromPanel converts a panel point, e.g. a touch, to logical coordinates.
func (t Transform) FromPanel(x, y int) (int, int) {
	if t.Orientation == Portrait {
		return t.PanelHeight - 1 - y, x
	}
	return x, y
}

// RectToPanel converts a logical rectangle to the panel rectangle covering
// the same pixels.
func (t Transform) RectToPanel(x, y, w, h int) (px, py, pw, ph int) {
	if t.Orientation == Portrait {
		return y, t.PanelHeight - x - w, h, w
	}
	return x, y, w, h
}
