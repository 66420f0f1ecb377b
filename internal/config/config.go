package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ARMNN2PERFETTO"

// Config holds all converter configuration.
type Config struct {
	Input  string `yaml:"input" envconfig:"INPUT"`
	Output string `yaml:"output" envconfig:"OUTPUT"`

	Flows        bool `yaml:"flows" envconfig:"FLOWS"`
	BeginEnd     bool `yaml:"begin_end" envconfig:"BEGIN_END"`
	Pretty       bool `yaml:"pretty" envconfig:"PRETTY"`
	StrictTiming bool `yaml:"strict_timing" envconfig:"STRICT_TIMING"`

	DisplayTimeUnit string `yaml:"display_time_unit" envconfig:"DISPLAY_TIME_UNIT"`
	ProcessName     string `yaml:"process_name" envconfig:"PROCESS_NAME"`
	PID             int    `yaml:"pid" envconfig:"PID"`

	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"` // "text" or "json"

	Markers MarkerConfig `yaml:"markers" envconfig:"MARKERS"`
	Tracks  TrackConfig  `yaml:"tracks" envconfig:"TRACKS"`
}

// MarkerConfig holds the substrings used to classify and normalize labels.
type MarkerConfig struct {
	Framework        string `yaml:"framework" envconfig:"FRAMEWORK"`
	Kernel           string `yaml:"kernel" envconfig:"KERNEL"`
	GemmToken        string `yaml:"gemm_token" envconfig:"GEMM_TOKEN"`
	OrdinalSeparator string `yaml:"ordinal_separator" envconfig:"ORDINAL_SEPARATOR"`
}

// TrackConfig holds the display labels of the three fixed tracks.
type TrackConfig struct {
	Framework string `yaml:"framework" envconfig:"FRAMEWORK"`
	Gemm      string `yaml:"gemm" envconfig:"GEMM"`
	Other     string `yaml:"other" envconfig:"OTHER"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Pretty:          true,
		DisplayTimeUnit: "ns",
		ProcessName:     "ArmNN Trace",
		LogLevel:        "info",
		LogFormat:       "text",
		Markers:         DefaultMarkers(),
		Tracks: TrackConfig{
			Framework: "ArmNN Top-Level",
			Gemm:      "GEMM MM Kernels",
			Other:     "Other OpenCL Kernels",
		},
	}
}

// DefaultMarkers returns the marker set matching ArmNN's profiler naming.
func DefaultMarkers() MarkerConfig {
	return MarkerConfig{
		Framework:        "Wall clock time (Start/Stop)",
		Kernel:           "OpenClKernelTimer",
		GemmToken:        "gemm_mm",
		OrdinalSeparator: ":",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the converter cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Markers.Framework) == "" {
		return fmt.Errorf("config: framework marker must not be empty")
	}
	if strings.TrimSpace(c.Markers.Kernel) == "" {
		return fmt.Errorf("config: kernel marker must not be empty")
	}
	if c.Markers.OrdinalSeparator == "" {
		return fmt.Errorf("config: ordinal separator must not be empty")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}
