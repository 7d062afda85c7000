package input

import (
	"fmt"

	"touchtris/tetris"

	"tinygo.org/x/drivers/touch"
)

// Scheme is the layout of the touch zones.
type Scheme int

const (
	// TriZone splits a control bar at the bottom of the screen into
	// LEFT / DROP / RIGHT buttons.
	TriZone Scheme = iota
	// Quadrant uses the upper half for left and right and the lower half
	// for dropping.
	Quadrant
)

// DefaultControlHeight is the height of the TriZone control bar in pixels.
const DefaultControlHeight = 40

func (s Scheme) String() string {
	switch s {
	case TriZone:
		return "trizone"
	case Quadrant:
		return "quadrant"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

func ParseScheme(s string) (Scheme, error) {
	switch s {
	case "trizone":
		return TriZone, nil
	case "quadrant":
		return Quadrant, nil
	}
	return 0, fmt.Errorf("unknown touch scheme %q", s)
}

// Phase is where a touch is in its press, hold, release cycle. Tap, the
// zero value, is a whole touch from a source that reports no phases, such
// as an interrupt handler posting a point.
type Phase int

const (
	Tap Phase = iota
	Press
	Hold
	Release
)

// Event is a touch in panel coordinates.
type Event struct {
	touch.Point
	Phase Phase
}

// Zone is a logical screen rectangle bound to an action.
type Zone struct {
	Action     tetris.Action
	Label      string
	X, Y, W, H int
}

func (z Zone) contains(x, y int) bool {
	return x >= z.X && x < z.X+z.W && y >= z.Y && y < z.Y+z.H
}

func (z Zone) center() (int, int) {
	return z.X + z.W/2, z.Y + z.H/2
}

// DefaultHoldDelay is how many Hold events a touch on the drop zone needs
// before it counts as a hold rather than a tap.
const DefaultHoldDelay = 10

// Mapper translates touches into actions. A Tap fires its zone's action at
// once. Otherwise left and right fire on press and the drop zone waits for
// the touch to end: a short touch hard drops, while a touch held for
// HoldDelay events soft drops once per further Hold.
type Mapper struct {
	Transform Transform
	Scheme    Scheme
	// ControlHeight is the TriZone bar height. Ignored by Quadrant.
	ControlHeight int
	// HoldDelay counts Hold events, which arrive once per loop iteration.
	HoldDelay int

	dropping bool
	holds    int
}

// ReservedHeight is the logical height kept free of the playfield.
func (m *Mapper) ReservedHeight() int {
	if m.Scheme == TriZone {
		return m.ControlHeight
	}
	return 0
}

// Zones returns the touch zones in logical coordinates.
func (m *Mapper) Zones() []Zone {
	w, h := m.Transform.Size()
	switch m.Scheme {
	case TriZone:
		third := w / 3
		y := h - m.ControlHeight
		return []Zone{
			{Action: tetris.MoveLeft, Label: "LEFT", X: 0, Y: y, W: third, H: m.ControlHeight},
			{Action: tetris.DropDown, Label: "DROP", X: third, Y: y, W: third, H: m.ControlHeight},
			{Action: tetris.MoveRight, Label: "RIGHT", X: 2 * third, Y: y, W: w - 2*third, H: m.ControlHeight},
		}
	case Quadrant:
		return []Zone{
			{Action: tetris.MoveLeft, Label: "LEFT", X: 0, Y: 0, W: w / 2, H: h / 2},
			{Action: tetris.MoveRight, Label: "RIGHT", X: w / 2, Y: 0, W: w - w/2, H: h / 2},
			{Action: tetris.DropDown, Label: "DROP", X: 0, Y: h / 2, W: w, H: h - h/2},
		}
	}
	return nil
}

// Map returns the action for a touch, or tetris.None.
func (m *Mapper) Map(ev Event) tetris.Action {
	switch ev.Phase {
	case Tap:
		m.Reset()
		z, ok := m.zoneAt(ev.X, ev.Y)
		if !ok {
			return tetris.None
		}
		return z.Action
	case Press:
		m.dropping = false
		z, ok := m.zoneAt(ev.X, ev.Y)
		if !ok {
			return tetris.None
		}
		if z.Action == tetris.DropDown {
			m.dropping = true
			m.holds = 0
			return tetris.None
		}
		return z.Action
	case Hold:
		if !m.dropping {
			return tetris.None
		}
		m.holds++
		if m.holds >= m.HoldThreshold() {
			return tetris.MoveDown
		}
	case Release:
		if m.dropping {
			m.dropping = false
			if m.holds < m.HoldThreshold() {
				return tetris.DropDown
			}
		}
	}
	return tetris.None
}

// Reset forgets a touch in progress, e.g. one consumed to leave the title.
func (m *Mapper) Reset() {
	m.dropping = false
	m.holds = 0
}

// HoldThreshold is HoldDelay with its default applied.
func (m *Mapper) HoldThreshold() int {
	if m.HoldDelay <= 0 {
		return DefaultHoldDelay
	}
	return m.HoldDelay
}

func (m *Mapper) zoneAt(px, py int) (Zone, bool) {
	x, y := m.Transform.FromPanel(px, py)
	for _, z := range m.Zones() {
		if z.contains(x, y) {
			return z, true
		}
	}
	return Zone{}, false
}

// Target returns the panel point a synthetic touch should hit to trigger a.
// DropDown and MoveDown both target the drop zone, as a tap and a hold.
func (m *Mapper) Target(a tetris.Action) (touch.Point, bool) {
	want := a
	switch a {
	case tetris.MoveDown:
		want = tetris.DropDown
	case tetris.Start:
		w, h := m.Transform.Size()
		px, py := m.Transform.ToPanel(w/2, h/2)
		return touch.Point{X: px, Y: py, Z: 1}, true
	}
	for _, z := range m.Zones() {
		if z.Action == want {
			px, py := m.Transform.ToPanel(z.center())
			return touch.Point{X: px, Y: py, Z: 1}, true
		}
	}
	return touch.Point{}, false
}
