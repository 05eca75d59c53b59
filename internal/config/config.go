package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/symbol"
	"github.com/vango-dev/marks/pkg/transition"
)

const (
	// DefaultPort is the default live server port.
	DefaultPort = 7070

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultWidth is the default chart width in pixels.
	DefaultWidth = 640

	// DefaultFPS is the default live transition frame rate.
	DefaultFPS = 60

	// DefaultEase is the default transition easing name.
	DefaultEase = "cubic"
)

// FileNames lists the config file names Load looks for, in order.
var FileNames = []string{"marks.json", "marks.yaml", "marks.yml"}

// Config represents a marks project configuration.
type Config struct {
	// Width is the chart width in pixels. Also the scale range upper bound.
	Width float64 `json:"width,omitempty" yaml:"width,omitempty"`

	// Title is written into the SVG <title>.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Background is the chart background color.
	Background string `json:"background,omitempty" yaml:"background,omitempty"`

	// LayoutHeight overrides the row height reported by the renderer.
	LayoutHeight float64 `json:"layoutHeight,omitempty" yaml:"layoutHeight,omitempty"`

	Symbol     SymbolConfig     `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Label      LabelConfig      `json:"label,omitempty" yaml:"label,omitempty"`
	Transition TransitionConfig `json:"transition,omitempty" yaml:"transition,omitempty"`
	Server     ServerConfig     `json:"server,omitempty" yaml:"server,omitempty"`
	Publish    PublishConfig    `json:"publish,omitempty" yaml:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SymbolConfig selects the mark shape.
type SymbolConfig struct {
	Shape  string  `json:"shape,omitempty" yaml:"shape,omitempty"`
	Size   float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Fill   string  `json:"fill,omitempty" yaml:"fill,omitempty"`
	Stroke string  `json:"stroke,omitempty" yaml:"stroke,omitempty"`
}

// LabelConfig wraps each symbol in a text label when Enabled.
type LabelConfig struct {
	Enabled  bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	FontSize float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
}

// TransitionConfig controls update animations.
type TransitionConfig struct {
	// Duration is a Go duration string (e.g., "250ms"). "0s" disables animation.
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Ease is an easing name understood by transition.EaseByName.
	Ease string `json:"ease,omitempty" yaml:"ease,omitempty"`
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// FPS is the scheduler step rate.
	FPS int `json:"fps,omitempty" yaml:"fps,omitempty"`

	// FrameInterval is how long each dataset frame stays on screen.
	FrameInterval string `json:"frameInterval,omitempty" yaml:"frameInterval,omitempty"`
}

// PublishConfig selects where snapshots are stored. Bucket wins over Dir.
type PublishConfig struct {
	Dir      string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from dir, trying each of FileNames in turn.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("M101").
		WithDetail("No marks.json or marks.yaml found in " + dir).
		WithSuggestion("Create marks.json, or pass --config")
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension; anything other than .yaml/.yml is read as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("M101").WithLocation(path, 0).Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("M102").WithLocation(path, 0).Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		if e, ok := err.(*errors.Error); ok && e.Location == nil {
			e.WithLocation(path, 0)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads from dir, returning defaults when no file exists.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// Exists reports whether dir holds a config file.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// SaveTo writes the configuration to path, as YAML or JSON by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("M103").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M101").WithLocation(path, 0).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Background == "" {
		c.Background = "white"
	}

	if c.Symbol.Shape == "" {
		c.Symbol.Shape = string(symbol.DefaultStyle.Shape)
	}
	if c.Symbol.Size == 0 {
		c.Symbol.Size = symbol.DefaultStyle.Size
	}
	if c.Symbol.Fill == "" {
		c.Symbol.Fill = symbol.DefaultStyle.Fill
	}

	if c.Transition.Duration == "" {
		c.Transition.Duration = transition.DefaultDuration.String()
	}
	if c.Transition.Ease == "" {
		c.Transition.Ease = DefaultEase
	}

	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.FPS == 0 {
		c.Server.FPS = DefaultFPS
	}
	if c.Server.FrameInterval == "" {
		c.Server.FrameInterval = "1s"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0:
		return errors.New("M103").WithDetail("width must be positive")
	case c.LayoutHeight < 0:
		return errors.New("M103").WithDetail("layoutHeight must not be negative")
	case c.Symbol.Size < 0:
		return errors.New("M103").WithDetail("symbol.size must not be negative")
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return errors.New("M103").WithDetail("server.port must be between 0 and 65535")
	case c.Server.FPS < 0:
		return errors.New("M103").WithDetail("server.fps must not be negative")
	}

	if _, err := symbol.ParseShape(c.Symbol.Shape); err != nil {
		return errors.New("M103").
			WithDetail(err.Error()).
			WithSuggestion("Use one of circle, square, diamond, triangle, cross")
	}
	if _, ok := transition.EaseByName(c.Transition.Ease); !ok {
		return errors.New("M103").
			WithDetailf("unknown transition.ease %q", c.Transition.Ease)
	}
	if _, err := c.TransitionDuration(); err != nil {
		return errors.New("M103").WithDetail("transition.duration: " + err.Error())
	}
	if _, err := c.FrameInterval(); err != nil {
		return errors.New("M103").WithDetail("server.frameInterval: " + err.Error())
	}
	return nil
}

// TransitionDuration parses Transition.Duration.
func (c *Config) TransitionDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Transition.Duration)
	if err == nil && d < 0 {
		return 0, errors.Newf(errors.CategoryConfig, "negative duration %s", d)
	}
	return d, err
}

// FrameInterval parses Server.FrameInterval.
func (c *Config) FrameInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.FrameInterval)
	if err == nil && d <= 0 {
		return 0, errors.Newf(errors.CategoryConfig, "frame interval must be positive")
	}
	return d, err
}

// ServerAddress returns the address string for the live server.
func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ServerURL returns the full URL for the live server.
func (c *Config) ServerURL() string {
	return "http://" + c.ServerAddress()
}

// UsesS3 reports whether snapshots go to S3 rather than a local directory.
func (c *Config) UsesS3() bool {
	return c.Publish.Bucket != ""
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
