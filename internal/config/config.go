package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds application configuration
type Config struct {
	Playlist      string     `json:"playlist"`
	DefaultVolume float64    `json:"default_volume"`
	DefaultPan    float64    `json:"default_pan"`
	SampleRate    int        `json:"sample_rate"`
	LoadWorkers   int        `json:"load_workers"`
	FPS           int        `json:"fps"`
	Canvas        Canvas     `json:"canvas"`
	Visualizer    Visualizer `json:"visualizer"`
	EndEpsilonMS  int        `json:"end_epsilon_ms"`
	LogFile       string     `json:"log_file"`
	LogLevel      string     `json:"log_level"`
	KeyBindings   KeyMap     `json:"key_bindings"`
}

// Canvas is the size of the visualizer image in pixels. Each terminal cell
// shows two vertical pixels.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Visualizer tunes the record animation and the analyzers feeding it.
type Visualizer struct {
	Bars             int     `json:"bars"`
	Amplification    float64 `json:"amplification"`
	SpectrumFraction float64 `json:"spectrum_fraction"`
	RotationSpeed    float64 `json:"rotation_speed"`
	FFTSize          int     `json:"fft_size"`
	Smoothing        float64 `json:"smoothing"`
	MinDecibels      float64 `json:"min_decibels"`
	MaxDecibels      float64 `json:"max_decibels"`
}

// KeyMap defines keyboard shortcuts
type KeyMap struct {
	PlayPause  string `json:"play_pause"`
	Play       string `json:"play"`
	Pause      string `json:"pause"`
	Stop       string `json:"stop"`
	Next       string `json:"next"`
	Previous   string `json:"previous"`
	VolumeUp   string `json:"volume_up"`
	VolumeDown string `json:"volume_down"`
	PanLeft    string `json:"pan_left"`
	PanRight   string `json:"pan_right"`
	Help       string `json:"help"`
	Quit       string `json:"quit"`
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *Config {
	return &Config{
		DefaultVolume: 0.5,
		DefaultPan:    0,
		SampleRate:    44100,
		LoadWorkers:   2,
		FPS:           60,
		Canvas:        Canvas{Width: 64, Height: 64},
		Visualizer: Visualizer{
			Bars:             180,
			Amplification:    2,
			SpectrumFraction: 0.5,
			RotationSpeed:    0.01,
			FFTSize:          2048,
			Smoothing:        0.8,
			MinDecibels:      -100,
			MaxDecibels:      -30,
		},
		EndEpsilonMS: 100,
		LogLevel:     "info",
		KeyBindings: KeyMap{
			PlayPause:  " ",
			Play:       "p",
			Pause:      "P",
			Stop:       "s",
			Next:       "n",
			Previous:   "b",
			VolumeUp:   "+",
			VolumeDown: "-",
			PanLeft:    "[",
			PanRight:   "]",
			Help:       "?",
			Quit:       "q",
		},
	}
}

// EndEpsilon is the end-of-track tolerance as a duration.
func (c *Config) EndEpsilon() time.Duration {
	return time.Duration(c.EndEpsilonMS) * time.Millisecond
}

// FrameInterval is the time between animation frames.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// Validate rejects values the player cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.DefaultVolume < 0 || c.DefaultVolume > 1:
		return fmt.Errorf("default_volume %v out of range [0,1]", c.DefaultVolume)
	case c.DefaultPan < -1 || c.DefaultPan > 1:
		return fmt.Errorf("default_pan %v out of range [-1,1]", c.DefaultPan)
	case c.SampleRate < 8000 || c.SampleRate > 192000:
		return fmt.Errorf("sample_rate %d out of range [8000,192000]", c.SampleRate)
	case c.LoadWorkers < 1:
		return fmt.Errorf("load_workers must be at least 1, got %d", c.LoadWorkers)
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("fps %d out of range [1,240]", c.FPS)
	case c.Canvas.Width < 8 || c.Canvas.Height < 8:
		return fmt.Errorf("canvas %dx%d is smaller than 8x8", c.Canvas.Width, c.Canvas.Height)
	case c.Visualizer.Bars < 1:
		return fmt.Errorf("visualizer.bars must be positive, got %d", c.Visualizer.Bars)
	case c.Visualizer.SpectrumFraction <= 0 || c.Visualizer.SpectrumFraction > 1:
		return fmt.Errorf("visualizer.spectrum_fraction %v out of range (0,1]", c.Visualizer.SpectrumFraction)
	case c.Visualizer.Amplification <= 0:
		return fmt.Errorf("visualizer.amplification must be positive, got %v", c.Visualizer.Amplification)
	case c.Visualizer.FFTSize < 32 || c.Visualizer.FFTSize&(c.Visualizer.FFTSize-1) != 0:
		return fmt.Errorf("visualizer.fft_size %d must be a power of two >= 32", c.Visualizer.FFTSize)
	case c.Visualizer.Smoothing < 0 || c.Visualizer.Smoothing >= 1:
		return fmt.Errorf("visualizer.smoothing %v out of range [0,1)", c.Visualizer.Smoothing)
	case c.Visualizer.MinDecibels >= c.Visualizer.MaxDecibels:
		return fmt.Errorf("visualizer.min_decibels %v must be below max_decibels %v",
			c.Visualizer.MinDecibels, c.Visualizer.MaxDecibels)
	case c.EndEpsilonMS < 0:
		return fmt.Errorf("end_epsilon_ms must not be negative, got %d", c.EndEpsilonMS)
	}
	return nil
}

// LoadConfig reads and unmarshals configuration from file. Fields missing
// from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return GetDefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := GetDefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// SaveConfig marshals and saves configuration to file
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadOrCreate loads config from path or creates default if not exists
func LoadOrCreate(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(config, path); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return config, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	if path := os.Getenv("VINYL_PLAYER_CONFIG"); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "vinylplayer", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}

	return filepath.Join(home, ".config", "vinylplayer", "config.json")
}
