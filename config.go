package pitchtrack

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default tuning knobs.
const (
	DefaultSampleRate              = 44100
	DefaultFrameSize               = 4096
	DefaultLevelThreshold          = 0.005
	DefaultZeroPeakFramesToRestart = 120
	DefaultZeroPeakEpsilon         = 1e-6
	DefaultMaxFloatRestarts        = 2
	DefaultSmoothWindow            = 5
	DefaultReferenceHz             = 440.0
	DefaultJoinTimeout             = 500 * time.Millisecond
	DefaultLogEvery                = 50
	DefaultListenAddr              = ":8081"
	DefaultHealthAddr              = ":8082"
)

// Config holds the engine and server configuration. It is fixed once the
// engine is constructed.
type Config struct {
	// SampleRate is the capture rate in Hz.
	SampleRate int `yaml:"sample_rate"`
	// FrameSize is the analysis window in samples. The hop is half of it.
	FrameSize int `yaml:"frame_size"`
	// PreferFloat selects float32 capture instead of int16. Only float
	// capture is watched for stuck-zero input.
	PreferFloat bool `yaml:"prefer_float"`

	// LevelThreshold is the peak amplitude under which a frame is silent.
	LevelThreshold float64 `yaml:"level_threshold"`
	// ZeroPeakFramesToRestart consecutive frames at or below
	// ZeroPeakEpsilon mark a float stream as stuck.
	ZeroPeakFramesToRestart int     `yaml:"zero_peak_frames_to_restart"`
	ZeroPeakEpsilon         float64 `yaml:"zero_peak_epsilon"`
	// MaxFloatRestarts bounds stream reopens per Start. Zero never
	// reopens.
	MaxFloatRestarts int `yaml:"max_float_restarts"`

	SmoothWindow int     `yaml:"smooth_window"`
	ReferenceHz  float64 `yaml:"reference_hz"`

	// JoinTimeout bounds how long Stop waits for the worker.
	JoinTimeout time.Duration `yaml:"join_timeout"`
	// LogEvery is the frame interval of the periodic debug line.
	LogEvery int `yaml:"log_every"`

	Device   string `yaml:"device"`
	Tuning   string `yaml:"tuning"`
	LogLevel string `yaml:"log_level"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures the result and health listeners.
type ServerConfig struct {
	Listen       string `yaml:"listen"`
	HealthListen string `yaml:"health_listen"`
}

// DefaultConfig returns a Config with every field at its default. Files
// and environment overrides are applied on top of it, so a zero value in
// either is taken literally.
func DefaultConfig() Config {
	return Config{
		SampleRate:              DefaultSampleRate,
		FrameSize:               DefaultFrameSize,
		LevelThreshold:          DefaultLevelThreshold,
		ZeroPeakFramesToRestart: DefaultZeroPeakFramesToRestart,
		ZeroPeakEpsilon:         DefaultZeroPeakEpsilon,
		MaxFloatRestarts:        DefaultMaxFloatRestarts,
		SmoothWindow:            DefaultSmoothWindow,
		ReferenceHz:             DefaultReferenceHz,
		JoinTimeout:             DefaultJoinTimeout,
		LogEvery:                DefaultLogEvery,
		Tuning:                  StandardTuningName,
		LogLevel:                "info",
		Server: ServerConfig{
			Listen:       DefaultListenAddr,
			HealthListen: DefaultHealthAddr,
		},
	}
}

// HopSize is the number of samples admitted per frame.
func (c Config) HopSize() int {
	return c.FrameSize / 2
}

// Validate checks every field and returns a joined error listing each
// failure found.
func (c *Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate %d must be positive", c.SampleRate))
	}
	if c.FrameSize < 4 || c.FrameSize%2 != 0 {
		errs = append(errs, fmt.Errorf("frame_size %d must be an even number of at least 4", c.FrameSize))
	}
	if c.LevelThreshold < 0 || c.LevelThreshold >= 1 {
		errs = append(errs, fmt.Errorf("level_threshold %v is out of range [0, 1)", c.LevelThreshold))
	}
	if c.ZeroPeakEpsilon < 0 || c.ZeroPeakEpsilon > c.LevelThreshold {
		errs = append(errs, fmt.Errorf("zero_peak_epsilon %v must be between 0 and level_threshold %v", c.ZeroPeakEpsilon, c.LevelThreshold))
	}
	if c.ZeroPeakFramesToRestart <= 0 {
		errs = append(errs, fmt.Errorf("zero_peak_frames_to_restart %d must be positive", c.ZeroPeakFramesToRestart))
	}
	if c.MaxFloatRestarts < 0 {
		errs = append(errs, fmt.Errorf("max_float_restarts %d must not be negative", c.MaxFloatRestarts))
	}
	if c.SmoothWindow <= 0 {
		errs = append(errs, fmt.Errorf("smooth_window %d must be positive", c.SmoothWindow))
	}
	if c.ReferenceHz <= 0 {
		errs = append(errs, fmt.Errorf("reference_hz %v must be positive", c.ReferenceHz))
	}
	if c.JoinTimeout <= 0 {
		errs = append(errs, fmt.Errorf("join_timeout %s must be positive", c.JoinTimeout))
	}
	if c.LogEvery <= 0 {
		errs = append(errs, fmt.Errorf("log_every %d must be positive", c.LogEvery))
	}
	if _, err := ParseTuning(c.Tuning); err != nil {
		errs = append(errs, fmt.Errorf("tuning: %w", err))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", c.LogLevel))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the YAML file at path over the defaults and validates it.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadConfigFromReader(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigFromReader decodes YAML from r over DefaultConfig. Unknown
// keys are rejected.
func LoadConfigFromReader(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PITCHTRACK_* variables. A nil lookup
// reads the process environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var errs []error
	overrideInt(lookup, "PITCHTRACK_SAMPLE_RATE", &c.SampleRate, &errs)
	overrideInt(lookup, "PITCHTRACK_FRAME_SIZE", &c.FrameSize, &errs)
	overrideBool(lookup, "PITCHTRACK_PREFER_FLOAT", &c.PreferFloat, &errs)
	overrideFloat(lookup, "PITCHTRACK_LEVEL_THRESHOLD", &c.LevelThreshold, &errs)
	overrideInt(lookup, "PITCHTRACK_ZERO_PEAK_FRAMES_TO_RESTART", &c.ZeroPeakFramesToRestart, &errs)
	overrideFloat(lookup, "PITCHTRACK_ZERO_PEAK_EPSILON", &c.ZeroPeakEpsilon, &errs)
	overrideInt(lookup, "PITCHTRACK_MAX_FLOAT_RESTARTS", &c.MaxFloatRestarts, &errs)
	overrideInt(lookup, "PITCHTRACK_SMOOTH_WINDOW", &c.SmoothWindow, &errs)
	overrideFloat(lookup, "PITCHTRACK_REFERENCE_HZ", &c.ReferenceHz, &errs)
	overrideString(lookup, "PITCHTRACK_DEVICE", &c.Device)
	overrideString(lookup, "PITCHTRACK_TUNING", &c.Tuning)
	overrideString(lookup, "PITCHTRACK_LOG_LEVEL", &c.LogLevel)
	overrideString(lookup, "PITCHTRACK_LISTEN", &c.Server.Listen)
	overrideString(lookup, "PITCHTRACK_HEALTH_LISTEN", &c.Server.HealthListen)
	if raw, ok := lookupTrimmed(lookup, "PITCHTRACK_JOIN_TIMEOUT"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("PITCHTRACK_JOIN_TIMEOUT: %w", err))
		} else {
			c.JoinTimeout = d
		}
	}
	return errors.Join(errs...)
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	value, ok := lookup(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if value, ok := lookupTrimmed(lookup, key); ok {
		*target = value
	}
}

func overrideInt(lookup func(string) (string, bool), key string, target *int, errs *[]error) {
	value, ok := lookupTrimmed(lookup, key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*target = n
}

func overrideFloat(lookup func(string) (string, bool), key string, target *float64, errs *[]error) {
	value, ok := lookupTrimmed(lookup, key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*target = f
}

func overrideBool(lookup func(string) (string, bool), key string, target *bool, errs *[]error) {
	value, ok := lookupTrimmed(lookup, key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*target = b
}
