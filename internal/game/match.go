package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
)

//go:generate go tool mockgen -destination=./mocks/music_mock.go -package=mocks . Music

// Music plays the soundtrack of a state. Implementations must not block.
type Music interface {
	PlayMusic(name string, loop bool) error
	StopMusic()
}

// ErrMisaligned is returned when a player comes to rest off the tile grid.
var ErrMisaligned = errors.New("player off tile grid")

// MatchSetup is everything a match needs from the bootstrap.
type MatchSetup struct {
	Config        Config
	Level         *Level
	Cubes         [2]Cube
	FlagSprite    *ebiten.Image
	CaptureSprite *ebiten.Image      // worn after taking a flag; nil keeps the cube sprite
	Bus           *InputBus
	Music         Music              // optional
	Logger        logrus.FieldLogger // optional; defaults to the standard logger
	Face          *text.GoTextFace   // optional HUD font
}

// Match is the state in which two players race around a level.
type Match struct {
	id      string
	cfg     Config
	level   *Level
	players []*Player
	objects []Object

	bus         *InputBus
	unsubscribe func()
	music       Music
	log         logrus.FieldLogger
	events      *MatchLog
	face        *text.GoTextFace

	tick    int
	elapsed float64 // seconds of wall time spent in Update
	active  bool
	showLog bool
}

// NewMatch builds a match from a loaded level. Players spawn on the level's
// spawn points and one flag is placed per flag point.
func NewMatch(s MatchSetup) (*Match, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if s.Level == nil {
		return nil, errors.New("match: no level")
	}
	if s.Bus == nil {
		s.Bus = NewInputBus()
	}
	if s.Logger == nil {
		s.Logger = logrus.StandardLogger()
	}

	id := uuid.NewString()
	m := &Match{
		id:     id,
		cfg:    s.Config,
		level:  s.Level,
		bus:    s.Bus,
		music:  s.Music,
		log:    s.Logger.WithField("match", id[:8]),
		events: NewMatchLog(),
		face:   s.Face,
	}
	for i, sp := range s.Level.Spawns {
		m.players = append(m.players, NewPlayer(PlayerID(i), s.Cubes[i], sp.X, sp.Y, s.Config.Speed))
	}
	fx := s.Config.Capture
	if s.CaptureSprite != nil {
		fx.Sprite = s.CaptureSprite
	}
	for _, fp := range s.Level.Flags {
		m.objects = append(m.objects, NewPickupFlag(fp.X, fp.Y, s.FlagSprite, fx))
	}
	return m, nil
}

func (m *Match) Name() string { return "match" }
func (m *Match) ID() string { return m.id }
func (m *Match) Tick() int { return m.tick }
func (m *Match) Elapsed() float64 { return m.elapsed }
func (m *Match) Level() *Level { return m.level }
func (m *Match) Players() []*Player { return m.players }
func (m *Match) Objects() []Object { return m.objects }
func (m *Match) Log() *MatchLog { return m.events }
func (m *Match) Active() bool { return m.active }

// Enter subscribes the match to keyboard input and starts its music.
// A music failure is logged and otherwise ignored.
func (m *Match) Enter() error {
	if m.active {
		return nil
	}
	m.unsubscribe = m.bus.Subscribe(m)
	if m.music != nil {
		if err := m.music.PlayMusic(m.cfg.MatchTrack, true); err != nil {
			m.log.WithError(err).WithField("track", m.cfg.MatchTrack).Warn("match music unavailable")
		}
	}
	m.active = true
	m.events.Add(m.tick, "--", "match start on "+m.level.Name)
	m.log.WithField("level", m.level.Name).Info("match started")
	return nil
}

// Exit releases the keyboard subscription and stops the music.
func (m *Match) Exit() {
	if !m.active {
		return
	}
	m.unsubscribe()
	m.unsubscribe = nil
	if m.music != nil {
		m.music.StopMusic()
	}
	m.active = false
	m.log.WithFields(logrus.Fields{"tick": m.tick, "elapsed": fmt.Sprintf("%.1fs", m.elapsed)}).Info("match ended")
}

// KeyDown routes a press to whichever player owns the key.
func (m *Match) KeyDown(k ebiten.Key) {
	if k == ebiten.KeyH {
		m.showLog = !m.showLog
		return
	}
	for i, binds := range playerKeys {
		if d, ok := binds[k]; ok && i < len(m.players) {
			m.players[i].Input.Press(d)
		}
	}
}

// KeyUp routes a release to whichever player owns the key.
func (m *Match) KeyUp(k ebiten.Key) {
	for i, binds := range playerKeys {
		if d, ok := binds[k]; ok && i < len(m.players) {
			m.players[i].Input.Release(d)
		}
	}
}

// Update runs one simulation tick:
//  1. drop a trail segment under each player,
//  2. move each player,
//  3. update every object,
//  4. reap finished objects,
//  5. handle events raised during the object pass.
func (m *Match) Update(dt float64) error {
	m.tick++
	m.elapsed += dt

	for _, p := range m.players {
		m.objects = append(m.objects, NewTrailSegment(p.x, p.y, p.cube.Color, m.cfg))
	}
	for _, p := range m.players {
		p.Update(m.level.Grid)
		if !p.Stepping() && (p.x%TileSize != 0 || p.y%TileSize != 0) {
			return fmt.Errorf("%w: %s at (%d,%d) tick %d", ErrMisaligned, p.id, p.x, p.y, m.tick)
		}
	}

	fr := Frame{Tick: m.tick, Players: m.players}
	for _, o := range m.objects {
		o.Update(&fr)
	}
	m.Reap()

	for _, e := range fr.events {
		m.handleEvent(e)
	}
	return nil
}

// Reap removes finished objects, keeping the order of the rest. It returns
// how many were removed; a second call in the same tick removes nothing.
func (m *Match) Reap() int {
	kept := m.objects[:0]
	for _, o := range m.objects {
		if !o.Done() {
			kept = append(kept, o)
		}
	}
	removed := len(m.objects) - len(kept)
	for i := len(kept); i < len(m.objects); i++ {
		m.objects[i] = nil
	}
	m.objects = kept
	return removed
}

func (m *Match) handleEvent(e Event) {
	switch e.Kind {
	case EventCapture:
		p := e.Player
		m.events.Add(e.Tick, p.id.String(), fmt.Sprintf("captured the flag at tile (%d,%d)", e.X/TileSize, e.Y/TileSize))
		m.log.WithFields(logrus.Fields{
			"player": p.id.String(),
			"tick":   e.Tick,
			"x":      e.X,
			"y":      e.Y,
			"speed":  p.speed,
		}).Info("flag captured")
		m.objects = append(m.objects, NewCaptureBurst(e.X, e.Y, p.cube.Color))
	}
}

// Draw paints back to front: level, objects, players, HUD.
func (m *Match) Draw(dst *ebiten.Image) {
	m.level.Draw(dst)
	if m.cfg.ShowGrid {
		drawGrid(dst)
	}
	for _, o := range m.objects {
		o.Draw(dst)
	}
	for _, p := range m.players {
		p.Draw(dst)
	}
	m.drawHUD(dst)
	if m.showLog {
		m.events.Draw(dst)
	}
}
