package audio

import (
	"os"
	"strconv"
)

// Environment variables read by LoadConfig.
const (
	envEnabled     = "CUBE_TRAILS_AUDIO_ENABLED"
	envMusicVolume = "CUBE_TRAILS_MUSIC_VOLUME"
	envSampleRate  = "CUBE_TRAILS_SAMPLE_RATE"
)

// Config controls the audio manager.
type Config struct {
	Enabled     bool
	MusicVolume float64 // 0.0-1.0
	SampleRate  int
}

// DefaultConfig returns audio on at half volume.
func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		MusicVolume: 0.5,
		SampleRate:  44100,
	}
}

// LoadConfig overlays environment variables on the defaults. Malformed values
// are ignored.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv(envEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv(envMusicVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MusicVolume = clamp01(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv(envSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
