package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
)

// State is one screen of the game hosted by a Loop. Enter acquires whatever
// the state listens to and Exit releases it.
type State interface {
	Name() string
	Enter() error
	Exit()
	Update(dt float64) error
	Draw(dst *ebiten.Image)
}

// Reporter is implemented by states that can describe themselves for a bug
// report.
type Reporter interface {
	DebugReport() string
}

// StateFactory builds a fresh state wired to the loop's input bus.
type StateFactory func(bus *InputBus) (State, error)

// Loop is the ebiten.Game that drives the active state once per tick and
// renders it onto a fixed-size canvas.
type Loop struct {
	bus     *InputBus
	factory StateFactory
	state   State
	log     logrus.FieldLogger

	now  func() time.Time
	last time.Time

	canvas  *ebiten.Image
	stopped bool

	// Reused key buffers for inpututil polling.
	down []ebiten.Key
	up   []ebiten.Key

	copyText func(string) error
}

// NewLoop creates a loop and enters the first state built by factory.
func NewLoop(factory StateFactory, logger logrus.FieldLogger) (*Loop, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	l := &Loop{
		bus:      NewInputBus(),
		factory:  factory,
		log:      logger,
		now:      time.Now,
		copyText: writeClipboard,
	}
	s, err := factory(l.bus)
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	if err := l.ChangeState(s); err != nil {
		return nil, err
	}
	return l, nil
}

// Bus returns the input bus states subscribe to.
func (l *Loop) Bus() *InputBus { return l.bus }

// State returns the active state, or nil once stopped.
func (l *Loop) State() State { return l.state }

// Stopped reports whether the loop has been stopped.
func (l *Loop) Stopped() bool { return l.stopped }

// ChangeState exits the current state and enters s.
func (l *Loop) ChangeState(s State) error {
	if l.state != nil {
		l.state.Exit()
		l.log.WithField("state", l.state.Name()).Debug("state exited")
	}
	l.state = s
	if s == nil {
		return nil
	}
	if err := s.Enter(); err != nil {
		l.state = nil
		return fmt.Errorf("enter %s: %w", s.Name(), err)
	}
	l.log.WithField("state", s.Name()).Info("state entered")
	return nil
}

// Restart replaces the active state with a fresh one from the factory.
func (l *Loop) Restart() error {
	s, err := l.factory(l.bus)
	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	return l.ChangeState(s)
}

// Stop exits the active state. The next Update ends the game.
func (l *Loop) Stop() {
	if l.stopped {
		return
	}
	if l.state != nil {
		l.state.Exit()
		l.log.WithField("state", l.state.Name()).Info("loop stopped")
		l.state = nil
	}
	l.stopped = true
}

// Update implements ebiten.Game.
func (l *Loop) Update() error {
	l.down = inpututil.AppendJustPressedKeys(l.down[:0])
	l.up = inpututil.AppendJustReleasedKeys(l.up[:0])
	return l.step(l.down, l.up)
}

// step applies this tick's key edges, then updates the state with the time
// elapsed since the previous tick.
func (l *Loop) step(down, up []ebiten.Key) error {
	if l.stopped {
		return ebiten.Termination
	}

	for _, k := range down {
		switch k {
		case ebiten.KeyEscape:
			l.Stop()
			return ebiten.Termination
		case ebiten.KeyR:
			if err := l.Restart(); err != nil {
				l.log.WithError(err).Error("restart failed")
				l.Stop()
				return err
			}
			continue
		case ebiten.KeyF9:
			l.copyReport()
			continue
		}
		l.bus.KeyDown(k)
	}
	for _, k := range up {
		l.bus.KeyUp(k)
	}

	now := l.now()
	dt := 0.0
	if !l.last.IsZero() {
		dt = now.Sub(l.last).Seconds()
	}
	l.last = now

	if l.state == nil {
		return nil
	}
	if err := l.state.Update(dt); err != nil {
		l.log.WithError(err).WithField("state", l.state.Name()).Error("state update failed")
		l.Stop()
		return err
	}
	return nil
}

func (l *Loop) copyReport() {
	r, ok := l.state.(Reporter)
	if !ok {
		return
	}
	if err := l.copyText(r.DebugReport()); err != nil {
		l.log.WithError(err).Warn("debug report not copied")
		return
	}
	l.log.Info("debug report copied to clipboard")
}

// Draw implements ebiten.Game.
func (l *Loop) Draw(screen *ebiten.Image) {
	if l.canvas == nil {
		l.canvas = ebiten.NewImage(ScreenWidth, ScreenHeight)
	}
	l.canvas.Clear()
	if l.state != nil {
		l.state.Draw(l.canvas)
	}

	screen.Fill(color.RGBA{A: 255})
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := canvasScale(sw, sh)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(math.Floor((float64(sw)-ScreenWidth*scale)/2), math.Floor((float64(sh)-ScreenHeight*scale)/2))
	screen.DrawImage(l.canvas, op)
}

// Layout implements ebiten.Game. The screen matches the window; Draw does
// the scaling so it can keep to whole (or half) multiples.
func (l *Loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// canvasScale is the largest whole multiple of the canvas that fits the
// window, never below one half.
func canvasScale(w, h int) float64 {
	fit := math.Min(float64(w)/ScreenWidth, float64(h)/ScreenHeight)
	return math.Max(math.Floor(fit), 0.5)
}
