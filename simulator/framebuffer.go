// Package simulator runs the game on a desktop: a Framebuffer standing in
// for the panel, a Pointer fed by the mouse or a touch screen and a window
// that shows both.
package simulator

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"touchtris/render"

	"tinygo.org/x/drivers/touch"
)

// Framebuffer is an in-memory panel. Drawing goes to a back buffer that
// Display copies to the front one, so the window never shows half a frame.
type Framebuffer struct {
	mu    sync.Mutex
	back  *image.RGBA
	front *image.RGBA
}

var _ render.Surface = (*Framebuffer)(nil)

func NewFramebuffer(width, height int) *Framebuffer {
	r := image.Rect(0, 0, width, height)
	return &Framebuffer{back: image.NewRGBA(r), front: image.NewRGBA(r)}
}

func (f *Framebuffer) Size() (x, y int16) {
	b := f.back.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.back.SetRGBA(int(x), int(y), c)
}

func (f *Framebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid rectangle %dx%d", width, height)
	}
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height))
	f.mu.Lock()
	defer f.mu.Unlock()
	draw.Draw(f.back, r.Intersect(f.back.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

func (f *Framebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front.Pix, f.back.Pix)
	return nil
}

// Snapshot copies the last displayed frame into dst as RGBA bytes.
func (f *Framebuffer) Snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front.Pix)
}

// At returns a displayed pixel.
func (f *Framebuffer) At(x, y int) color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.front.RGBAAt(x, y)
}

// Pointer is a touch controller driven from another goroutine, such as the
// window's update loop. It implements input.Source.
type Pointer struct {
	mu   sync.Mutex
	cur  touch.Point
	last touch.Point
}

// Set records the finger at x, y in panel pixels.
func (p *Pointer) Set(x, y int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cur = touch.Point{X: x, Y: y, Z: 1}
}

// Lift records that nothing touches the panel.
func (p *Pointer) Lift() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cur = touch.Point{}
}

func (p *Pointer) Touched() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = p.cur
	return p.last.Z > 0
}

func (p *Pointer) ReadTouchPoint() touch.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
