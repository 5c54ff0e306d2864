package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Direction is a movement intent.
type Direction int

const (
	Idle Direction = iota
	Left
	Right
	Up
	Down
	directionCount
)

func (d Direction) String() string {
	switch d {
	case Idle:
		return "idle"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("dir(%d)", int(d))
	}
}

// delta returns the unit tile offset of a direction.
func (d Direction) delta() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	default:
		return 0, 0
	}
}

// InputStack is the ordered set of held directions of one player,
// most recent last.
type InputStack struct {
	held []Direction
}

// Press records a key-down. Pressing the current top again is ignored.
func (s *InputStack) Press(d Direction) {
	if d == Idle || s.Top() == d {
		return
	}
	s.remove(d)
	s.held = append(s.held, d)
}

// Release records a key-up and removes the first occurrence of d.
func (s *InputStack) Release(d Direction) {
	s.remove(d)
}

func (s *InputStack) remove(d Direction) {
	for i, h := range s.held {
		if h == d {
			s.held = append(s.held[:i], s.held[i+1:]...)
			return
		}
	}
}

// Top returns the most recently pressed held direction, or Idle.
func (s *InputStack) Top() Direction {
	if len(s.held) == 0 {
		return Idle
	}
	return s.held[len(s.held)-1]
}

// Second returns the direction below the top, or Idle.
func (s *InputStack) Second() Direction {
	if len(s.held) < 2 {
		return Idle
	}
	return s.held[len(s.held)-2]
}

// Len returns the number of held directions.
func (s *InputStack) Len() int { return len(s.held) }

// Snapshot returns a copy of the held directions, oldest first.
func (s *InputStack) Snapshot() []Direction {
	return append([]Direction(nil), s.held...)
}

// Clear drops every held direction.
func (s *InputStack) Clear() { s.held = s.held[:0] }

// playerKeys maps each player's key cluster to directions.
var playerKeys = [2]map[ebiten.Key]Direction{
	{
		ebiten.KeyA: Left,
		ebiten.KeyD: Right,
		ebiten.KeyW: Up,
		ebiten.KeyS: Down,
	},
	{
		ebiten.KeyArrowLeft:  Left,
		ebiten.KeyArrowRight: Right,
		ebiten.KeyArrowUp:    Up,
		ebiten.KeyArrowDown:  Down,
	},
}

// KeyListener receives key edges from an InputBus.
type KeyListener interface {
	KeyDown(k ebiten.Key)
	KeyUp(k ebiten.Key)
}

type subscription struct {
	id int
	l  KeyListener
}

// InputBus fans key edges out to the listeners of whichever states are live.
type InputBus struct {
	subs   []subscription
	nextID int
}

// NewInputBus creates an empty bus.
func NewInputBus() *InputBus {
	return &InputBus{}
}

// Subscribe registers l and returns the func that removes it. Calling the
// returned func more than once is a no-op.
func (b *InputBus) Subscribe(l KeyListener) func() {
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, l: l})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of live subscriptions.
func (b *InputBus) Listeners() int { return len(b.subs) }

// KeyDown dispatches a key press in subscription order.
func (b *InputBus) KeyDown(k ebiten.Key) {
	for _, s := range b.snapshot() {
		s.l.KeyDown(k)
	}
}

// KeyUp dispatches a key release in subscription order.
func (b *InputBus) KeyUp(k ebiten.Key) {
	for _, s := range b.snapshot() {
		s.l.KeyUp(k)
	}
}

// snapshot lets a listener unsubscribe while being dispatched to.
func (b *InputBus) snapshot() []subscription {
	return append([]subscription(nil), b.subs...)
}
