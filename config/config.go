package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Pipeline struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	LogLvl  string `yaml:"log_level" mapstructure:"log_level"`
}

type Paths struct {
	Wav         string `yaml:"wav" mapstructure:"wav"`
	Transcripts string `yaml:"transcripts" mapstructure:"transcripts"`
	Corpus      string `yaml:"corpus" mapstructure:"corpus"`
	Outputs     string `yaml:"outputs" mapstructure:"outputs"`
}

type MFA struct {
	Binary        string `yaml:"binary" mapstructure:"binary"`
	Dictionary    string `yaml:"dictionary" mapstructure:"dictionary"`
	AcousticModel string `yaml:"acoustic_model" mapstructure:"acoustic_model"`
	Beam          int    `yaml:"beam" mapstructure:"beam"`
	RetryBeam     int    `yaml:"retry_beam" mapstructure:"retry_beam"`
}

type Audio struct {
	MinSampleRate int `yaml:"min_sample_rate" mapstructure:"min_sample_rate"`
	MaxChannels   int `yaml:"max_channels" mapstructure:"max_channels"`
}

type Root struct {
	Pipeline Pipeline `yaml:"pipeline" mapstructure:"pipeline"`
	Paths    Paths    `yaml:"paths" mapstructure:"paths"`
	MFA      MFA      `yaml:"mfa" mapstructure:"mfa"`
	Audio    Audio    `yaml:"audio" mapstructure:"audio"`
}

// Load reads config.yaml from config/<env>/ or the working directory,
// falling back to built-in defaults when no file is present. Environment
// variables prefixed MFA_ override file values (MFA_PATHS_OUTPUTS etc).
func Load(path string) (*Root, error) {
	v := viper.New()

	v.SetDefault("pipeline.name", "mfa-pipeline")
	v.SetDefault("pipeline.version", "1.0.0")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("paths.wav", "wav")
	v.SetDefault("paths.transcripts", "transcripts")
	v.SetDefault("paths.corpus", filepath.Join("mfa_data", "corpus"))
	v.SetDefault("paths.outputs", "outputs")
	v.SetDefault("mfa.binary", "mfa")
	v.SetDefault("mfa.dictionary", "english_us_arpa")
	v.SetDefault("mfa.acoustic_model", "english_us_arpa")
	v.SetDefault("mfa.beam", 100)
	v.SetDefault("mfa.retry_beam", 400)
	v.SetDefault("audio.min_sample_rate", 16000)
	v.SetDefault("audio.max_channels", 1)

	v.SetEnvPrefix("MFA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		env := os.Getenv("PIPELINE_ENV")
		if env == "" {
			env = "dev"
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join("config", env))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func (r *Root) TextGridDir() string { return filepath.Join(r.Paths.Outputs, "textgrids") }

func (r *Root) LogDir() string { return filepath.Join(r.Paths.Outputs, "logs") }

func (r *Root) VisualizationDir() string {
	return filepath.Join(r.Paths.Outputs, "visualizations")
}
