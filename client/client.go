// Package client runs the game loop: it polls the touch source, feeds the
// mapper, ticks gravity, paints what changed and mirrors the board.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"touchtris/input"
	"touchtris/render"
	"touchtris/tetris"
)

const DefaultFrameInterval = 20 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

type tetrisGame interface {
	State() tetris.State
	Action(tetris.Action)
	Tick()
	Frame() tetris.Frame
	Read() *tetris.Tetris
}

type painter interface {
	Paint(tetris.Frame) error
}

type publisher interface {
	Send(*tetris.Tetris)
}

type Options struct {
	Scheme         input.Scheme
	Orientation    input.Orientation
	ControlHeight  int
	DropInterval   time.Duration
	RestartToTitle bool
	FrameInterval  time.Duration
	Seed           uint64
	Mirror         *Mirror
}

type Client struct {
	tetris  tetrisGame
	render  painter
	mapper  *input.Mapper
	box     *input.Mailbox
	poller  *input.Poller
	mirror  publisher
	logger  *slog.Logger
	ticker  Ticker
	current tetris.State
}

// New sizes the board to the surface and wires the loop. src may be nil
// when touches are posted straight to Mailbox.
func New(l *slog.Logger, s render.Surface, src input.Source, o *Options) (*Client, error) {
	if o == nil {
		o = &Options{}
	}
	w, h := s.Size()
	controls := o.ControlHeight
	if controls <= 0 {
		controls = input.DefaultControlHeight
	}
	mapper := &input.Mapper{
		Transform:     input.Transform{Orientation: o.Orientation, PanelWidth: int(w), PanelHeight: int(h)},
		Scheme:        o.Scheme,
		ControlHeight: controls,
	}
	lw, lh := mapper.Transform.Size()
	geo, err := render.NewGeometry(lw, lh, mapper.ReservedHeight())
	if err != nil {
		return nil, fmt.Errorf("failed to size the board: %w", err)
	}
	interval := o.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	box := &input.Mailbox{}
	c := &Client{
		tetris: tetris.NewGame(&tetris.Options{
			Width:          geo.Cols,
			Height:         geo.Rows,
			DropInterval:   o.DropInterval,
			RestartToTitle: o.RestartToTitle,
			Seed:           o.Seed,
		}),
		render: render.NewPainter(render.NewScreen(s, mapper.Transform), geo, mapper.Zones()),
		mapper: mapper,
		box:    box,
		logger: l,
		ticker: newWrappedTicker(interval),
	}
	if src != nil {
		c.poller = input.NewPoller(src, box)
	}
	if o.Mirror != nil {
		c.mirror = o.Mirror
	}
	l.Debug("board sized",
		slog.Int("cols", geo.Cols), slog.Int("rows", geo.Rows), slog.Int("block", geo.Block),
		slog.String("scheme", o.Scheme.String()), slog.String("orientation", o.Orientation.String()))
	return c, nil
}

// Mailbox accepts touches from interrupt handlers or other goroutines.
func (c *Client) Mailbox() *input.Mailbox { return c.box }

func (c *Client) Mapper() *input.Mapper { return c.mapper }

// Attach starts polling src once per frame. It is for sources that need the
// client's mapper to exist first, and must be called before Run.
func (c *Client) Attach(src input.Source) {
	c.poller = input.NewPoller(src, c.box)
}

// Run shows the title until the first touch and then steps the game once
// per frame until ctx is done or painting fails.
func (c *Client) Run(ctx context.Context) error {
	defer c.ticker.Stop()
	if err := c.WaitForTouch(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.ticker.C():
			if err := c.Step(); err != nil {
				return err
			}
		}
	}
}

// WaitForTouch paints the current screen and blocks until a press starts
// the game.
func (c *Client) WaitForTouch(ctx context.Context) error {
	if err := c.paint(); err != nil {
		return err
	}
	for c.tetris.State() != tetris.Running {
		if c.poller != nil {
			c.poller.Poll()
		}
		if ev, ok := c.box.Take(); ok {
			c.handle(ev)
			if c.tetris.State() == tetris.Running {
				break
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.ticker.C():
		}
	}
	return c.paint()
}

// Step runs one loop iteration: at most one touch, gravity, repaint.
func (c *Client) Step() error {
	if c.poller != nil {
		c.poller.Poll()
	}
	if ev, ok := c.box.Take(); ok {
		c.handle(ev)
	}
	c.tetris.Tick()
	return c.paint()
}

func (c *Client) handle(ev input.Event) {
	if c.tetris.State() != tetris.Running {
		// a finger still down from the last game must lift first.
		if ev.Phase == input.Press || ev.Phase == input.Tap {
			c.mapper.Reset()
			c.tetris.Action(tetris.Start)
		}
		return
	}
	if a := c.mapper.Map(ev); a != tetris.None {
		c.tetris.Action(a)
	}
}

func (c *Client) paint() error {
	f := c.tetris.Frame()
	if f.Empty() {
		return nil
	}
	if f.State != c.current {
		c.logger.Info("state changed",
			slog.String("from", c.current.String()),
			slog.String("to", f.State.String()),
			slog.Int("lines", f.Lines))
		c.current = f.State
	}
	if err := c.render.Paint(f); err != nil {
		return fmt.Errorf("failed to paint frame: %w", err)
	}
	if c.mirror != nil {
		c.mirror.Send(c.tetris.Read())
	}
	return nil
}
