package terminal

import (
	"log/slog"

	"touchtris/input"
	"touchtris/tetris"

	"github.com/eiannone/keyboard"
	"tinygo.org/x/drivers/touch"
)

// stroke is a synthetic touch lasting a number of polls.
type stroke struct {
	point touch.Point
	polls int
}

// Keys is an input.Source that presses the on screen zones for the player:
// arrows and WASD tap left, right and drop, holding down soft drops. Every
// stroke is followed by one untouched poll so the next one starts with a
// fresh press.
type Keys struct {
	mapper *input.Mapper
	events <-chan keyboard.KeyEvent
	logger *slog.Logger
	doneCh chan struct{}
	done   bool

	queue    []stroke
	point    touch.Point
	left     int
	released bool
}

func NewKeys(events <-chan keyboard.KeyEvent, m *input.Mapper, l *slog.Logger) *Keys {
	return &Keys{
		mapper:   m,
		events:   events,
		logger:   l,
		doneCh:   make(chan struct{}),
		released: true,
	}
}

// Done is closed once the player quits with q, Esc or Ctrl-C.
func (k *Keys) Done() <-chan struct{} { return k.doneCh }

func (k *Keys) Touched() bool {
	k.drain()
	if k.left > 0 {
		k.left--
		return true
	}
	if !k.released {
		k.released = true
		return false
	}
	if len(k.queue) == 0 {
		return false
	}
	s := k.queue[0]
	k.queue = k.queue[1:]
	k.point, k.left, k.released = s.point, s.polls-1, false
	return true
}

func (k *Keys) ReadTouchPoint() touch.Point { return k.point }

func (k *Keys) drain() {
	for {
		select {
		case event, ok := <-k.events:
			if !ok {
				k.logger.Error("Keyboard events channel closed unexpectedly")
				k.quit()
				return
			}
			k.key(event)
		default:
			return
		}
	}
}

func (k *Keys) key(event keyboard.KeyEvent) {
	if event.Err != nil {
		k.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
		k.quit()
		return
	}
	var a tetris.Action
	switch {
	case event.Key == keyboard.KeyCtrlC || event.Key == keyboard.KeyEsc || event.Rune == 'q':
		k.quit()
		return
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		a = tetris.MoveLeft
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		a = tetris.MoveRight
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		a = tetris.MoveDown
	case event.Key == keyboard.KeyArrowUp || event.Key == keyboard.KeySpace || event.Rune == 'w':
		a = tetris.DropDown
	case event.Key == keyboard.KeyEnter:
		a = tetris.Start
	default:
		return
	}
	p, ok := k.mapper.Target(a)
	if !ok {
		return
	}
	polls := 1
	if a == tetris.MoveDown {
		// key repeat keeps a held stroke going one more soft drop.
		if k.left > 0 && k.point == p {
			k.left++
			return
		}
		polls = 1 + k.mapper.HoldThreshold()
	}
	k.queue = append(k.queue, stroke{point: p, polls: polls})
}

func (k *Keys) quit() {
	if !k.done {
		k.done = true
		close(k.doneCh)
	}
}
