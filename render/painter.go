package render

import (
	"fmt"

	"touchtris/input"
	"touchtris/tetris"
)

// Painter turns frames into display writes. Full frames repaint the whole
// screen for their state; partial frames only touch the listed cells.
type Painter struct {
	screen   *Screen
	geo      Geometry
	controls []input.Zone
}

// NewPainter draws zones that lie below the playfield as buttons.
func NewPainter(s *Screen, geo Geometry, zones []input.Zone) *Painter {
	p := &Painter{screen: s, geo: geo}
	_, _, _, fieldHeight := geo.Playfield()
	for _, z := range zones {
		if z.Y >= fieldHeight {
			p.controls = append(p.controls, z)
		}
	}
	return p
}

func (p *Painter) Paint(f tetris.Frame) error {
	if f.Empty() {
		return nil
	}
	if f.Full {
		if err := p.screen.Fill(0, 0, p.geo.Width, p.geo.Height, Background); err != nil {
			return fmt.Errorf("clear screen: %w", err)
		}
	}
	switch {
	case f.Full && f.State == tetris.Title:
		p.title()
	default:
		if err := p.cells(f.Cells); err != nil {
			return err
		}
		if f.Full {
			if err := p.drawControls(); err != nil {
				return err
			}
		}
		if f.Full && f.State == tetris.GameOver {
			if err := p.gameOver(f.Lines); err != nil {
				return err
			}
		}
	}
	return p.screen.Display()
}

func (p *Painter) cells(cells []tetris.CellUpdate) error {
	for _, c := range cells {
		if c.X < 0 || c.Y < 0 || c.X >= p.geo.Cols || c.Y >= p.geo.Rows {
			continue
		}
		x, y := p.geo.Cell(c.X, c.Y)
		if err := p.screen.Fill(x, y, p.geo.Block, p.geo.Block, Palette[c.Color]); err != nil {
			return fmt.Errorf("paint cell %d,%d: %w", c.X, c.Y, err)
		}
	}
	return nil
}

func (p *Painter) drawControls() error {
	for _, z := range p.controls {
		if err := p.screen.Fill(z.X, z.Y, z.W, z.H, Button); err != nil {
			return fmt.Errorf("paint %s button: %w", z.Label, err)
		}
		p.screen.CenteredText(z.X, z.W, z.Y+z.H/2+4, z.Label, Text)
	}
	return nil
}

func (p *Painter) title() {
	w, h := p.geo.Width, p.geo.Height
	p.screen.CenteredText(0, w, h/4, "TETRIS", Text)
	p.screen.CenteredText(0, w, h/2+20, "Tap to start", Text)
}

func (p *Painter) gameOver(lines int) error {
	w, h := p.geo.Width, p.geo.Height
	boxH := 48
	y := h/2 - boxH
	if err := p.screen.Fill(0, y, w, boxH, Background); err != nil {
		return fmt.Errorf("paint game over box: %w", err)
	}
	p.screen.CenteredText(0, w, y+14, "GAME OVER", Text)
	p.screen.CenteredText(0, w, y+28, fmt.Sprintf("Lines: %d", lines), Text)
	p.screen.CenteredText(0, w, y+42, "Tap to restart", Text)
	return nil
}
