package config

import (
	"os"
	"path/filepath"

	"codeberg.org/veska/keywatch/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultBatchSize = 100
	DefaultHeartbeat = 5

	configName = "keywatch"
	envPrefix  = "KEYWATCH"
)

type Config struct {
	JournalDir  string `mapstructure:"journal_dir"`
	BatchSize   int    `mapstructure:"batch_size"`
	Heartbeat   int    `mapstructure:"heartbeat"`
	Milestone   int    `mapstructure:"milestone"`
	Telemetry   bool   `mapstructure:"telemetry"`
	TelemetryDB string `mapstructure:"database"`
	Debug       bool   `mapstructure:"debug"`
	Verbose     bool   `mapstructure:"verbose"`
}

// Load reads configuration from file, environment and bound flags, in
// ascending order of precedence. A missing config file is not an error.
func Load(flags *pflag.FlagSet) (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("journal_dir", defaultJournalDir())
	v.SetDefault("batch_size", DefaultBatchSize)
	v.SetDefault("heartbeat", DefaultHeartbeat)
	v.SetDefault("milestone", 0)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", defaultTelemetryDB())
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)

	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		if configHome, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configHome, configName))
		}
		v.AddConfigPath("/etc")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		// Flag names use hyphens, config keys use underscores.
		bindings := map[string]string{
			"journal_dir": "journal-dir",
			"batch_size":  "batch-size",
			"heartbeat":   "heartbeat",
			"milestone":   "milestone",
			"telemetry":   "telemetry",
			"database":    "database",
			"debug":       "debug",
			"verbose":     "verbose",
		}
		for key, name := range bindings {
			flag := flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the loaded configuration for values the monitor
// cannot operate with.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.JournalDir == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "journal directory must not be empty")
	}
	if c.BatchSize <= 0 {
		return errFactory.WithData(errors.ErrInvalidBatchSize, c.BatchSize)
	}
	if c.Heartbeat <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Heartbeat)
	}
	if c.Milestone < 0 {
		return errFactory.WithData(errors.ErrInvalidArgument, c.Milestone)
	}
	if c.Telemetry && c.TelemetryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "telemetry enabled without a database path")
	}

	return nil
}

func defaultJournalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "keyboard_logs"
	}

	return filepath.Join(home, ".local", "share", configName, "logs")
}

func defaultTelemetryDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "keywatch-telemetry.db")
	}

	return filepath.Join(home, ".local", "share", configName, "telemetry.db")
}
