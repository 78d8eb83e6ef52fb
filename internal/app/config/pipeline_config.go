package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// PipelineConfig represents the tunable settings of the transcription
// pipeline. Everything has a usable default; a YAML file overrides it.
type PipelineConfig struct {
	// Model is the remote transcription model identifier.
	Model string `yaml:"model" validate:"required"`

	// SpeedFactor time-compresses audio before transcription. 1.0 disables.
	SpeedFactor float64 `yaml:"speed_factor" validate:"gt=0"`

	// SegmentTimeoutSec bounds each segment's export + remote call.
	// 0 disables the per-segment timeout.
	SegmentTimeoutSec int `yaml:"segment_timeout_sec" validate:"gte=0"`

	// FFmpegPath and FFprobePath override binary lookup on PATH.
	FFmpegPath  string `yaml:"ffmpeg_path,omitempty"`
	FFprobePath string `yaml:"ffprobe_path,omitempty"`

	Archive ArchiveConfig `yaml:"archive,omitempty"`
}

// ArchiveConfig represents optional object-storage archiving of source audio
// and transcripts after a successful run.
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint,omitempty" validate:"required_if=Enabled true"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Bucket    string `yaml:"bucket,omitempty" validate:"required_if=Enabled true"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

// DefaultPipelineConfig returns the defaults used when no config file exists.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		Model:             "whisper-1",
		SpeedFactor:       1.0,
		SegmentTimeoutSec: 300,
	}
}

// LoadPipelineConfig loads pipeline configuration from a YAML file and
// validates it. An empty path returns the defaults.
func LoadPipelineConfig(configPath string) (*PipelineConfig, error) {
	cfg := DefaultPipelineConfig()
	if configPath == "" {
		return cfg, nil
	}

	// Expand environment variables in path
	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *PipelineConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	return nil
}
