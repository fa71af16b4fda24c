// Package config loads runtime settings from defaults, an optional config
// file, ORRERY_* environment variables and command-line overrides, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/pick"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ORRERY"

// Setting keys.
const (
	KeySystem          = "system"
	KeyFPS             = "fps"
	KeyMinZoom         = "min_zoom"
	KeyMaxZoom         = "max_zoom"
	KeyStartZoom       = "start_zoom"
	KeyDragSensitivity = "drag_sensitivity"
	KeyClickThreshold  = "click_threshold"
	KeySurfaceWidth    = "surface_width"
	KeySurfaceHeight   = "surface_height"
	KeySeed            = "seed"
	KeyLogLevel        = "log_level"
	KeyLogFile         = "log_file"
	KeyStars           = "stars"
	KeyLabels          = "labels"
)

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid config")
	// ErrRead is returned when a config file cannot be read or parsed.
	ErrRead = errors.New("read config")
)

// Config is the resolved application configuration.
type Config struct {
	System          string
	FPS             int
	MinZoom         float64
	MaxZoom         float64
	StartZoom       float64
	DragSensitivity float64
	ClickThreshold  int
	SurfaceWidth    float64 // fraction of terminal columns
	SurfaceHeight   float64 // fraction of terminal rows
	Seed            int64
	LogLevel        string
	LogFile         string
	Stars           int
	Labels          bool
}

// Default returns the built-in configuration.
func Default() Config {
	cam := camera.DefaultConfig()
	return Config{
		System:          catalog.Solar.String(),
		FPS:             cam.FPS,
		MinZoom:         cam.MinZoom,
		MaxZoom:         cam.MaxZoom,
		StartZoom:       cam.StartZoom,
		DragSensitivity: cam.Sensitivity,
		ClickThreshold:  pick.DefaultClickThreshold,
		SurfaceWidth:    render.DefaultWidthFraction,
		SurfaceHeight:   render.DefaultHeightFraction,
		LogLevel:        "info",
		Stars:           scene.DefaultStarCount,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeySystem, d.System)
	v.SetDefault(KeyFPS, d.FPS)
	v.SetDefault(KeyMinZoom, d.MinZoom)
	v.SetDefault(KeyMaxZoom, d.MaxZoom)
	v.SetDefault(KeyStartZoom, d.StartZoom)
	v.SetDefault(KeyDragSensitivity, d.DragSensitivity)
	v.SetDefault(KeyClickThreshold, d.ClickThreshold)
	v.SetDefault(KeySurfaceWidth, d.SurfaceWidth)
	v.SetDefault(KeySurfaceHeight, d.SurfaceHeight)
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyStars, d.Stars)
	v.SetDefault(KeyLabels, d.Labels)
}

// Load resolves the configuration. path may be empty; its format follows
// the file extension (yaml, toml, json). overrides hold explicitly set
// command-line values keyed by setting name.
func Load(path string, overrides map[string]interface{}) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w %s: %w", ErrRead, path, err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := Config{
		System:          v.GetString(KeySystem),
		FPS:             v.GetInt(KeyFPS),
		MinZoom:         v.GetFloat64(KeyMinZoom),
		MaxZoom:         v.GetFloat64(KeyMaxZoom),
		StartZoom:       v.GetFloat64(KeyStartZoom),
		DragSensitivity: v.GetFloat64(KeyDragSensitivity),
		ClickThreshold:  v.GetInt(KeyClickThreshold),
		SurfaceWidth:    v.GetFloat64(KeySurfaceWidth),
		SurfaceHeight:   v.GetFloat64(KeySurfaceHeight),
		Seed:            v.GetInt64(KeySeed),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFile:         v.GetString(KeyLogFile),
		Stars:           v.GetInt(KeyStars),
		Labels:          v.GetBool(KeyLabels),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	var errs []error
	if _, err := catalog.ParseSystem(c.System); err != nil {
		errs = append(errs, err)
	}
	if c.FPS < 1 || c.FPS > 120 {
		errs = append(errs, fmt.Errorf("fps %d outside [1, 120]", c.FPS))
	}
	if c.MinZoom <= 0 {
		errs = append(errs, fmt.Errorf("min_zoom %g must be positive", c.MinZoom))
	}
	if c.MaxZoom < c.MinZoom {
		errs = append(errs, fmt.Errorf("max_zoom %g below min_zoom %g", c.MaxZoom, c.MinZoom))
	}
	if c.DragSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("drag_sensitivity %g must be positive", c.DragSensitivity))
	}
	if c.ClickThreshold < 1 {
		errs = append(errs, fmt.Errorf("click_threshold %d must be at least 1", c.ClickThreshold))
	}
	if c.SurfaceWidth <= 0 || c.SurfaceWidth > 1 {
		errs = append(errs, fmt.Errorf("surface_width %g outside (0, 1]", c.SurfaceWidth))
	}
	if c.SurfaceHeight <= 0 || c.SurfaceHeight > 1 {
		errs = append(errs, fmt.Errorf("surface_height %g outside (0, 1]", c.SurfaceHeight))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Stars < 0 {
		errs = append(errs, fmt.Errorf("stars %d is negative", c.Stars))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// SystemValue returns the configured starting system. It assumes Validate
// has passed and falls back to the Solar System otherwise.
func (c Config) SystemValue() catalog.System {
	sys, err := catalog.ParseSystem(c.System)
	if err != nil {
		return catalog.Solar
	}
	return sys
}

// Level returns the configured log level.
func (c Config) Level() logging.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}

// FrameInterval is the redraw period for the configured frame rate.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / time.Duration(Default().FPS)
	}
	return time.Second / time.Duration(c.FPS)
}

// Camera returns the camera configuration. A start zoom outside the zoom
// limits is clamped by the camera.
func (c Config) Camera() camera.Config {
	cam := camera.DefaultConfig()
	cam.MinZoom = c.MinZoom
	cam.MaxZoom = c.MaxZoom
	cam.StartZoom = c.StartZoom
	cam.Sensitivity = c.DragSensitivity
	cam.FPS = c.FPS
	return cam.Normalize()
}

// Session returns the session configuration.
func (c Config) Session(log *logging.Logger) state.Config {
	sc := state.DefaultConfig()
	sc.System = c.SystemValue()
	sc.Camera = c.Camera()
	sc.ClickThreshold = c.ClickThreshold
	sc.StarCount = c.Stars
	sc.Seed = c.Seed
	sc.Logger = log
	return sc
}
