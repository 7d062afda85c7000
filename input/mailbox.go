package input

import (
	"sync"

	"tinygo.org/x/drivers/touch"
)

// Mailbox holds at most one pending touch. Put may be called from an
// interrupt handler or another goroutine; the game loop drains it with Take.
// A newer event replaces an unread one, except that a touch whose Press was
// never read is kept whole: later Holds leave the Press pending and the
// Release turns it into a Tap at the pressed point.
type Mailbox struct {
	mu      sync.Mutex
	ev      Event
	pending bool
}

func (m *Mailbox) Put(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending && m.ev.Phase == Press {
		switch ev.Phase {
		case Hold:
			return
		case Release:
			m.ev.Phase = Tap
			return
		}
	}
	m.ev = ev
	m.pending = true
}

// Take returns the pending event, if any, and empties the mailbox.
func (m *Mailbox) Take() (Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pending {
		return Event{}, false
	}
	m.pending = false
	return m.ev, true
}

// Source is a touch controller that can be polled without blocking.
type Source interface {
	Touched() bool
	ReadTouchPoint() touch.Point
}

type pointerSource struct {
	p    touch.Pointer
	last touch.Point
}

// FromPointer adapts a driver that only implements touch.Pointer: a reading
// with a non-zero pressure counts as a touch.
func FromPointer(p touch.Pointer) Source {
	return &pointerSource{p: p}
}

func (s *pointerSource) Touched() bool {
	s.last = s.p.ReadTouchPoint()
	return s.last.Z > 0
}

func (s *pointerSource) ReadTouchPoint() touch.Point { return s.last }

// Poller samples a Source once per loop iteration and posts press, hold
// and release events to a Mailbox.
type Poller struct {
	src  Source
	box  *Mailbox
	down bool
	last touch.Point
}

func NewPoller(src Source, box *Mailbox) *Poller {
	return &Poller{src: src, box: box}
}

func (p *Poller) Poll() {
	if p.src.Touched() {
		pt := p.src.ReadTouchPoint()
		phase := Hold
		if !p.down {
			phase = Press
		}
		p.down = true
		p.last = pt
		p.box.Put(Event{Point: pt, Phase: phase})
		return
	}
	if p.down {
		p.down = false
		p.box.Put(Event{Point: p.last, Phase: Release})
	}
}
