package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	BackendONNX   = "onnx"
	BackendOpenCV = "opencv"

	LayoutNHWC = "nhwc"
	LayoutNCHW = "nchw"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvModel    = "DROPCLASSIFY_MODEL"
	EnvBackend  = "DROPCLASSIFY_BACKEND"
	EnvORTLib   = "DROPCLASSIFY_ORT_LIB"
	EnvDebug    = "DROPCLASSIFY_DEBUG"
	EnvJSONLogs = "DROPCLASSIFY_JSON_LOGS"
)

type Config struct {
	ModelPath  string `yaml:"model_path"`
	Backend    string `yaml:"backend"`
	ORTLibrary string `yaml:"ort_library"`
	InputName  string `yaml:"input_name"`
	OutputName string `yaml:"output_name"`
	OutputSize int    `yaml:"output_size"`
	ImageSize  int    `yaml:"image_size"`
	Layout     string `yaml:"layout"`

	// Labels overrides the built-in identity table when non-empty.
	Labels []string `yaml:"labels"`

	PreviewSize  int `yaml:"preview_size"`
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`

	LogLevel string `yaml:"log_level"`
	JSONLogs bool   `yaml:"json_logs"`
}

func Default() Config {
	return Config{
		ModelPath:    "models/image_classification_model.onnx",
		Backend:      BackendONNX,
		InputName:    "input",
		OutputName:   "output",
		OutputSize:   5,
		ImageSize:    224,
		Layout:       LayoutNHWC,
		PreviewSize:  200,
		WindowWidth:  500,
		WindowHeight: 400,
		LogLevel:     "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path (if any)
// and then with the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvModel); v != "" {
		c.ModelPath = v
	}
	if v := getenv(EnvBackend); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := getenv(EnvORTLib); v != "" {
		c.ORTLibrary = v
	}
	if enabled, err := strconv.ParseBool(getenv(EnvDebug)); err == nil && enabled {
		c.LogLevel = "debug"
	}
	if enabled, err := strconv.ParseBool(getenv(EnvJSONLogs)); err == nil {
		c.JSONLogs = enabled
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.ModelPath == "" {
		errs = append(errs, errors.New("model_path is required"))
	}

	switch c.Backend {
	case BackendONNX, BackendOpenCV:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	switch c.Layout {
	case LayoutNHWC, LayoutNCHW:
	default:
		errs = append(errs, fmt.Errorf("unknown layout %q", c.Layout))
	}

	if c.ImageSize <= 0 {
		errs = append(errs, fmt.Errorf("image_size must be positive, got %d", c.ImageSize))
	}
	if c.OutputSize <= 0 {
		errs = append(errs, fmt.Errorf("output_size must be positive, got %d", c.OutputSize))
	}
	if c.PreviewSize <= 0 {
		errs = append(errs, fmt.Errorf("preview_size must be positive, got %d", c.PreviewSize))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size %dx%d", c.WindowWidth, c.WindowHeight))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log_level: %w", err))
	}

	return errors.Join(errs...)
}

// Level converts LogLevel, falling back to info for unparseable values.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
