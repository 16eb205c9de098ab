package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/trane-courses/internal/fsutil"
	"github.com/spf13/viper"
)

// Commands understood by the application.
const (
	CommandBuild    = "build"
	CommandGenerate = "generate"
)

// EnvPrefix prefixes every environment variable read by LoadConfig, e.g.
// COURSEBUILD_OUT_PATH.
const EnvPrefix = "COURSEBUILD"

// DefaultConfigName is the config file looked up in the working directory
// when none is given explicitly.
const DefaultConfigName = "coursebuild"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Command is chosen on the command line only.
	Command string `mapstructure:"-" validate:"required,oneof=build generate"`

	CoursesPath string `mapstructure:"courses_path" validate:"required"`
	OutPath     string `mapstructure:"out_path" validate:"required"`

	LogFormat    string `mapstructure:"log_format" validate:"required,oneof=text json"`
	LogLevel     string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReportFormat string `mapstructure:"report_format" validate:"required,oneof=text json"`

	AllowExternalDependencies bool `mapstructure:"allow_external_dependencies"`
}

// Defaults returns the value of every config key when nothing overrides it.
func Defaults() map[string]any {
	return map[string]any{
		"courses_path":                "courses",
		"out_path":                    "build",
		"log_format":                  "text",
		"log_level":                   "info",
		"report_format":               "text",
		"allow_external_dependencies": false,
	}
}

// NewConfig validates cfg and returns it. The output directory is replaced
// wholesale by a build, so it may neither contain nor sit inside the courses
// directory.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Command == "" {
		cfg.Command = CommandBuild
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.ReportFormat = strings.ToLower(cfg.ReportFormat)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.Command == CommandBuild {
		inside, err := fsutil.IsWithin(cfg.OutPath, cfg.CoursesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output path: %w", err)
		}
		if inside {
			return nil, fmt.Errorf("output path %s must not be inside courses path %s", cfg.OutPath, cfg.CoursesPath)
		}
		contains, err := fsutil.IsWithin(cfg.CoursesPath, cfg.OutPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve courses path: %w", err)
		}
		if contains {
			return nil, fmt.Errorf("courses path %s must not be inside output path %s", cfg.CoursesPath, cfg.OutPath)
		}
	}

	return &cfg, nil
}

// LoadConfig resolves the configuration for command. Values are layered, each
// overriding the one before: Defaults, the config file, COURSEBUILD_*
// environment variables, then overrides (explicitly set command-line flags).
// An empty configFile looks for an optional coursebuild.yaml in the working
// directory; a named file must exist.
func LoadConfig(command, configFile string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Command = command
	return NewConfig(cfg)
}
