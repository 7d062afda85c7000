//go:build cgo

package simulator

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a window that shows fb, feeds the mouse or the first touch to p
// and calls step once per tick. It blocks until the window closes, ctx is
// done or step fails.
func Run(ctx context.Context, fb *Framebuffer, p *Pointer, o *Options, step func() error) error {
	o = o.withDefaults()
	w, h := fb.Size()
	g := &window{ctx: ctx, fb: fb, pointer: p, step: step, bounds: image.Rect(0, 0, int(w), int(h))}
	ebiten.SetWindowTitle(o.Title)
	ebiten.SetWindowSize(int(w)*o.Scale, int(h)*o.Scale)
	ebiten.SetTPS(o.TPS)
	return ebiten.RunGame(g)
}

type window struct {
	ctx     context.Context
	fb      *Framebuffer
	pointer *Pointer
	step    func() error
	bounds  image.Rectangle
	pix     []byte
	img     *ebiten.Image
}

func (g *window) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.track()
	return g.step()
}

func (g *window) track() {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if x, y := ebiten.CursorPosition(); image.Pt(x, y).In(g.bounds) {
			g.pointer.Set(x, y)
			return
		}
	}
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		if x, y := ebiten.TouchPosition(ids[0]); image.Pt(x, y).In(g.bounds) {
			g.pointer.Set(x, y)
			return
		}
	}
	g.pointer.Lift()
}

func (g *window) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(g.bounds.Dx(), g.bounds.Dy())
		g.pix = make([]byte, 4*g.bounds.Dx()*g.bounds.Dy())
	}
	g.fb.Snapshot(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *window) Layout(_, _ int) (int, int) {
	return g.bounds.Dx(), g.bounds.Dy()
}
