package app

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"life-grid/internal/controller"
)

// Patterns accepted by Config.Pattern.
const (
	PatternEmpty  = "empty"
	PatternRandom = "random"
	PatternNoise  = "noise"
)

// Config represents the command-line parameters for the application.
type Config struct {
	CellSize  int     `json:"cell_size"`
	Margin    int     `json:"margin"`
	TickMS    int     `json:"tick_ms"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Pattern   string  `json:"pattern"`
	Seed      int64   `json:"seed"`
	Density   float64 `json:"density"`
	Threshold float64 `json:"threshold"`
	FPS       int     `json:"fps"`
	LogLevel  string  `json:"log_level"`
}

// NewConfig returns a Config populated with the defaults: 40px cells, a 60px
// margin and a 100ms tick on an initially empty board.
func NewConfig() *Config {
	return &Config{
		CellSize:  controller.DefaultCellSize,
		Margin:    controller.DefaultMargin,
		TickMS:    int(controller.DefaultTickPeriod / time.Millisecond),
		Width:     1280,
		Height:    800,
		Pattern:   PatternEmpty,
		Seed:      42,
		Density:   0.25,
		Threshold: 0.1,
		FPS:       30,
		LogLevel:  "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "cell size in pixels")
	fs.IntVar(&c.Margin, "margin", c.Margin, "viewport margin reserved around the board")
	fs.IntVar(&c.TickMS, "tick-ms", c.TickMS, "milliseconds between generations")
	fs.IntVar(&c.Width, "width", c.Width, "initial viewport width")
	fs.IntVar(&c.Height, "height", c.Height, "initial viewport height")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "initial board: empty, random or noise")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random and noise boards")
	fs.Float64Var(&c.Density, "density", c.Density, "live cell probability for random boards")
	fs.Float64Var(&c.Threshold, "threshold", c.Threshold, "noise level above which cells start alive")
	fs.IntVar(&c.FPS, "fps", c.FPS, "terminal redraw limit")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// LoadFile overlays values from a JSON file onto c. Fields absent from the
// file keep their current values.
func (c *Config) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "[LoadFile] failed to read file: %+v", filename)
	}
	if err = json.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "[LoadFile] failed to unmarshal data from file: %+v", filename)
	}
	return nil
}

// LoadEnv overlays LIFE_* environment variables onto c. Dotenv files are
// loaded first when present; variables already set in the environment win.
func (c *Config) LoadEnv(dotenv ...string) error {
	for _, f := range dotenv {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "[LoadEnv] failed to load dotenv file: %+v", f)
		}
	}

	ints := map[string]*int{
		"LIFE_CELL_SIZE": &c.CellSize,
		"LIFE_MARGIN":    &c.Margin,
		"LIFE_TICK_MS":   &c.TickMS,
		"LIFE_WIDTH":     &c.Width,
		"LIFE_HEIGHT":    &c.Height,
		"LIFE_FPS":       &c.FPS,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "[LoadEnv] invalid %s", key)
		}
		*dst = parsed
	}

	floats := map[string]*float64{
		"LIFE_DENSITY":   &c.Density,
		"LIFE_THRESHOLD": &c.Threshold,
	}
	for key, dst := range floats {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "[LoadEnv] invalid %s", key)
		}
		*dst = parsed
	}

	if v, ok := os.LookupEnv("LIFE_SEED"); ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "[LoadEnv] invalid LIFE_SEED")
		}
		c.Seed = parsed
	}
	if v, ok := os.LookupEnv("LIFE_PATTERN"); ok {
		c.Pattern = v
	}
	if v, ok := os.LookupEnv("LIFE_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// Validate rejects values the board cannot be built from.
func (c *Config) Validate() error {
	if c.CellSize <= 0 {
		return errors.Errorf("cell size must be positive, got %d", c.CellSize)
	}
	if c.Margin <= 0 {
		return errors.Errorf("margin must be positive, got %d", c.Margin)
	}
	if c.TickMS <= 0 {
		return errors.Errorf("tick period must be positive, got %dms", c.TickMS)
	}
	switch strings.ToLower(c.Pattern) {
	case PatternEmpty, PatternRandom, PatternNoise:
	default:
		return errors.Errorf("unknown pattern %q", c.Pattern)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}

// TickPeriod returns the tick period as a duration.
func (c *Config) TickPeriod() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Logger builds a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "life",
	})
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// ControllerOptions maps the config onto controller options.
func (c *Config) ControllerOptions(logger *log.Logger) controller.Options {
	return controller.Options{
		CellSize:       c.CellSize,
		Margin:         c.Margin,
		TickPeriod:     c.TickPeriod(),
		ViewportWidth:  c.Width,
		ViewportHeight: c.Height,
		Logger:         logger,
	}
}

// ApplyPattern installs the configured starting pattern on ctrl.
func (c *Config) ApplyPattern(ctrl *controller.Controller) {
	switch strings.ToLower(c.Pattern) {
	case PatternRandom:
		ctrl.Randomize(c.Seed, c.Density)
	case PatternNoise:
		ctrl.Noise(c.Seed, c.Threshold)
	}
}
