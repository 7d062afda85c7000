package render

import (
	"image/color"

	"touchtris/input"
	"touchtris/tetris"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Surface is a display that can fill rectangles, like the ili9341 driver.
type Surface interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

var (
	Background = color.RGBA{A: 255}
	Button     = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	Text       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Palette maps board colors to pixels. Index 0 is the empty cell.
var Palette = [tetris.Colors + 1]color.RGBA{
	Background,
	{R: 255, A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 255, A: 255},
	{G: 255, B: 255, A: 255},
	{R: 255, B: 255, A: 255},
}

// TextWriter is implemented by surfaces that draw text themselves, such as
// a terminal. Coordinates are panel pixels of the text's baseline start.
type TextWriter interface {
	WriteText(x, y int16, str string, c color.RGBA)
	TextWidth(str string) int
}

// Screen draws in logical coordinates. It is itself a drivers.Displayer so
// tinyfont can write through the orientation transform.
type Screen struct {
	surface Surface
	tr      input.Transform
	font    tinyfont.Fonter
}

var _ drivers.Displayer = (*Screen)(nil)

func NewScreen(s Surface, tr input.Transform) *Screen {
	return &Screen{surface: s, tr: tr, font: &proggy.TinySZ8pt7b}
}

func (s *Screen) Size() (x, y int16) {
	w, h := s.tr.Size()
	return int16(w), int16(h)
}

func (s *Screen) SetPixel(x, y int16, c color.RGBA) {
	w, h := s.tr.Size()
	if x < 0 || y < 0 || int(x) >= w || int(y) >= h {
		return
	}
	px, py := s.tr.ToPanel(int(x), int(y))
	s.surface.SetPixel(int16(px), int16(py), c)
}

func (s *Screen) Display() error {
	return s.surface.Display()
}

// Fill paints a logical rectangle.
func (s *Screen) Fill(x, y, w, h int, c color.RGBA) error {
	px, py, pw, ph := s.tr.RectToPanel(x, y, w, h)
	return s.surface.FillRectangle(int16(px), int16(py), int16(pw), int16(ph), c)
}

// TextWidth returns the advance of str in pixels.
func (s *Screen) TextWidth(str string) int {
	if tw, ok := s.surface.(TextWriter); ok {
		return tw.TextWidth(str)
	}
	_, outbox := tinyfont.LineWidth(s.font, str)
	return int(outbox)
}

// Text writes str with its baseline at y.
func (s *Screen) Text(x, y int, str string, c color.RGBA) {
	if tw, ok := s.surface.(TextWriter); ok {
		px, py := s.tr.ToPanel(x, y)
		tw.WriteText(int16(px), int16(py), str, c)
		return
	}
	tinyfont.WriteLine(s, s.font, int16(x), int16(y), str, c)
}

// CenteredText writes str centred horizontally within [x, x+w).
func (s *Screen) CenteredText(x, w, y int, str string, c color.RGBA) {
	s.Text(x+(w-s.TextWidth(str))/2, y, str, c)
}
