package tetris

import (
	"math/rand/v2"
	"sync"
	"time"
)

// MockClock is a manual Clock for tests.
type MockClock struct {
	now time.Time
	mu  sync.Mutex
}

func NewMockClock() *MockClock {
	return &MockClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// NewTestGame creates a running game around a specific TestTetris and returns
// it with the manual clock driving its gravity.
func NewTestGame(t *Tetris) (*Game, *MockClock) {
	return NewConfigurableTestGame(t, nil)
}

// NewConfigurableTestGame is NewTestGame with the DropInterval,
// RestartToTitle and Seed of o applied. Size and Clock come from t and the
// returned MockClock.
func NewConfigurableTestGame(t *Tetris, o *Options) (*Game, *MockClock) {
	if o == nil {
		o = &Options{}
	}
	interval := o.DropInterval
	if interval <= 0 {
		interval = DefaultDropInterval
	}
	seed := o.Seed
	if seed == 0 {
		seed = 1
	}
	clock := NewMockClock()
	g := &Game{
		tetris:         t,
		clock:          clock,
		rng:            rand.New(rand.NewPCG(seed, 2)),
		dropInterval:   interval,
		restartToTitle: o.RestartToTitle,
		lastDrop:       clock.Now(),
		damage:         newDamage(t.Board.Width()),
	}
	return g, clock
}

// NewTestTetris creates a running 10x20 Tetris with the given shape at the
// spawn location and color 1.
func NewTestTetris(shape Shape) *Tetris {
	t := newTetris(DefaultWidth, DefaultHeight)
	t.State = Running
	t.Tetromino = &Piece{Shape: shape, X: DefaultWidth/2 - 1, Color: 1}
	return t
}
