package input

import "tinygo.org/x/drivers/touch"

// Calibration maps raw controller readings onto panel pixels. Readings at
// MinX and MaxX land on the first and last column, and likewise for Y. Set
// SwapXY when the controller's axes are the panel's Y and X. Min may be
// larger than Max for a mirrored axis.
type Calibration struct {
	MinX, MaxX int
	MinY, MaxY int
	SwapXY     bool
}

type calibrated struct {
	src  Source
	c    Calibration
	w, h int
}

// Calibrate wraps src so that its points are in pixels of a w by h panel,
// clamped to the panel's edges.
func Calibrate(src Source, c Calibration, w, h int) Source {
	return &calibrated{src: src, c: c, w: w, h: h}
}

func (s *calibrated) Touched() bool { return s.src.Touched() }

func (s *calibrated) ReadTouchPoint() touch.Point {
	p := s.src.ReadTouchPoint()
	if s.c.SwapXY {
		p.X, p.Y = p.Y, p.X
	}
	p.X = scale(p.X, s.c.MinX, s.c.MaxX, s.w)
	p.Y = scale(p.Y, s.c.MinY, s.c.MaxY, s.h)
	return p
}

func scale(v, lo, hi, size int) int {
	if hi == lo {
		return 0
	}
	out := (v - lo) * (size - 1) / (hi - lo)
	return min(max(out, 0), size-1)
}
