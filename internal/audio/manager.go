package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotInitialized = errors.New("audio: speaker not initialized")
	ErrUnknownTrack   = errors.New("audio: unknown track")
	ErrFormat         = errors.New("audio: unsupported file type")
)

// resampleQuality is beep's interpolation quality for tracks recorded at a
// different rate than the speaker.
const resampleQuality = 4

// Manager owns the speaker and the loaded music tracks. Only one track plays
// at a time.
type Manager struct {
	mu     sync.Mutex
	cfg    Config
	rate   beep.SampleRate
	log    logrus.FieldLogger
	tracks map[string]*beep.Buffer
	mixer  *beep.Mixer

	ctrl        *beep.Ctrl
	volume      *effects.Volume
	playing     string
	initialized bool
}

// NewManager creates a manager. Nothing touches the audio device until Init.
func NewManager(cfg *Config, logger logrus.FieldLogger) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Manager{
		cfg:    *cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		log:    logger.WithField("component", "audio"),
		tracks: make(map[string]*beep.Buffer),
		mixer:  &beep.Mixer{},
	}
}

// Enabled reports whether the configuration allows sound.
func (m *Manager) Enabled() bool { return m.cfg.Enabled }

// Init opens the speaker. It is a no-op when audio is disabled or already up.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !m.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	m.log.WithField("rate", int(m.rate)).Debug("speaker ready")
	return nil
}

// Load decodes an .ogg or .wav file into memory under name.
func (m *Manager) Load(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("audio: load %s: %w", name, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("%w: %s", ErrFormat, path)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != m.rate {
		src = beep.Resample(resampleQuality, format.SampleRate, m.rate, stream)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: m.rate, NumChannels: 2, Precision: 2})
	buf.Append(src)

	m.mu.Lock()
	m.tracks[name] = buf
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{"track": name, "samples": buf.Len()}).Debug("track loaded")
	return nil
}

// PlayMusic replaces whatever is playing with the named track. With loop set
// the track repeats until StopMusic. Disabled audio plays nothing and reports
// no error.
func (m *Manager) PlayMusic(name string, loop bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.Enabled {
		return nil
	}
	buf, ok := m.tracks[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, name)
	}
	if !m.initialized {
		return ErrNotInitialized
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if loop {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	vol := &effects.Volume{Streamer: s, Base: 2}
	vol.Volume, vol.Silent = volumeLevel(m.cfg.MusicVolume)
	ctrl := &beep.Ctrl{Streamer: vol}

	speaker.Lock()
	if m.ctrl != nil {
		m.ctrl.Streamer = nil
	}
	m.mixer.Clear()
	m.mixer.Add(ctrl)
	speaker.Unlock()

	m.ctrl = ctrl
	m.volume = vol
	m.playing = name
	return nil
}

// StopMusic silences the current track.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctrl == nil {
		return
	}
	if m.initialized {
		speaker.Lock()
		m.ctrl.Paused = true
		m.mixer.Clear()
		speaker.Unlock()
	}
	m.ctrl = nil
	m.volume = nil
	m.playing = ""
}

// Playing returns the name of the current track, or "".
func (m *Manager) Playing() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// SetVolume sets the music volume in [0,1] and applies it to the current
// track.
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg.MusicVolume = clamp01(v)
	if m.volume == nil || !m.initialized {
		return
	}
	speaker.Lock()
	m.volume.Volume, m.volume.Silent = volumeLevel(m.cfg.MusicVolume)
	speaker.Unlock()
}

// Volume returns the configured music volume.
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.MusicVolume
}

// Close stops playback and releases the speaker.
func (m *Manager) Close() {
	m.StopMusic()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// volumeLevel maps a linear gain in [0,1] to effects.Volume's base-2
// exponent. Zero is reported as silent.
func volumeLevel(v float64) (float64, bool) {
	v = clamp01(v)
	if v == 0 {
		return 0, true
	}
	return math.Log2(v), false
}
