package tetris

import (
	"math/rand/v2"
	"time"
)

type Action string

const (
	None      Action = ""      // No action, e.g. a touch outside every zone.
	MoveLeft  Action = "left"  // Moves the Tetromino one step to the left.
	MoveRight Action = "right" // Moves the Tetromino one step to the right.
	MoveDown  Action = "down"  // Moves the Tetromino one step down.
	DropDown  Action = "drop"  // Drops the Tetromino down the stack.
	Start     Action = "start" // Leaves the title or game over screen.
)

const (
	DefaultWidth        = 10
	DefaultHeight       = 20
	DefaultDropInterval = 500 * time.Millisecond
)

// Clock is the only source of time for the session.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type Options struct {
	Width, Height int
	DropInterval  time.Duration
	// RestartToTitle sends a touch on the game over screen back to the title
	// instead of straight into a new game.
	RestartToTitle bool
	// Seed makes piece selection reproducible. Zero picks a random seed.
	Seed  uint64
	Clock Clock
}

// Game is a session: it owns the board, the falling piece and the gravity
// timer. It is not safe for concurrent use; a single loop drives it through
// Action and Tick and paints what Frame returns.
type Game struct {
	tetris         *Tetris
	clock          Clock
	rng            *rand.Rand
	dropInterval   time.Duration
	restartToTitle bool
	lastDrop       time.Time
	damage         *damage
}

func NewGame(o *Options) *Game {
	if o == nil {
		o = &Options{}
	}
	width, height := o.Width, o.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	interval := o.DropInterval
	if interval <= 0 {
		interval = DefaultDropInterval
	}
	clock := o.Clock
	if clock == nil {
		clock = systemClock{}
	}
	seed := o.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := &Game{
		tetris:         newTetris(width, height),
		clock:          clock,
		rng:            rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		dropInterval:   interval,
		restartToTitle: o.RestartToTitle,
		damage:         newDamage(width),
	}
	g.damage.all()
	return g
}

func (g *Game) State() State { return g.tetris.State }

// Read returns a copy of the current Tetris status that's safe to keep or
// hand to another goroutine.
func (g *Game) Read() *Tetris {
	return g.tetris.copy()
}

// Frame returns the cells changed since the previous call.
func (g *Game) Frame() Frame {
	return g.damage.drain(g.tetris)
}

// Action applies a player action. Outside Running every action counts as a
// touch and moves the session on; while Running illegal moves are ignored.
func (g *Game) Action(a Action) {
	switch g.tetris.State {
	case Title:
		g.start()
	case GameOver:
		if g.restartToTitle {
			g.tetris.State = Title
			g.damage.all()
			return
		}
		g.start()
	case Running:
		switch a {
		case MoveLeft:
			g.shift(-1, 0)
		case MoveRight:
			g.shift(1, 0)
		case MoveDown:
			g.shift(0, 1)
		case DropDown:
			// drop down doesn't wait for the tick to finish the round
			g.damage.piece(g.tetris.Tetromino)
			g.tetris.drop()
			g.land()
		}
	}
}

// Tick runs gravity: once DropInterval has passed since the last drop the
// piece moves down one row or lands.
func (g *Game) Tick() {
	if g.tetris.State != Running {
		return
	}
	now := g.clock.Now()
	if now.Sub(g.lastDrop) < g.dropInterval {
		return
	}
	g.lastDrop = now
	if !g.shift(0, 1) {
		g.land()
	}
}

func (g *Game) start() {
	g.tetris.Board.Reset()
	g.tetris.LinesClear = 0
	g.tetris.State = Running
	g.damage.all()
	g.next()
	g.lastDrop = g.clock.Now()
}

func (g *Game) shift(dx, dy int) bool {
	old := *g.tetris.Tetromino
	if !g.tetris.move(dx, dy) {
		return false
	}
	g.damage.piece(&old)
	g.damage.piece(g.tetris.Tetromino)
	return true
}

// land merges the piece, clears lines and drafts the next piece.
func (g *Game) land() {
	g.damage.piece(g.tetris.Tetromino)
	if cleared := g.tetris.toStack(); len(cleared) > 0 {
		// rows above the lowest cleared row all shift down.
		g.damage.rows(cleared[0])
	}
	g.next()
	g.lastDrop = g.clock.Now()
}

// next spawns a new piece or ends the game when it cannot be placed.
func (g *Game) next() {
	p := spawn(g.rng, g.tetris.Board.Width())
	if !CanMove(g.tetris.Board, p, 0, 0) {
		g.tetris.Tetromino = nil
		g.tetris.State = GameOver
		g.damage.all()
		return
	}
	g.tetris.Tetromino = &p
	g.damage.piece(&p)
}
