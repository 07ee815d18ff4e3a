// Package config resolves runtime settings from defaults, an optional config
// file, an optional .env file and APPRESP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"appresp/internal/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "APPRESP"
	DefaultAddr = "127.0.0.1:3335"
)

type Config struct {
	Data        string          `mapstructure:"data"`
	Addr        string          `mapstructure:"addr"`
	ReadOnly    bool            `mapstructure:"read_only"`
	DefaultSort model.SortOrder `mapstructure:"default_sort"`
	Watch       bool            `mapstructure:"watch"`
	Log         LogConfig       `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives log output; empty means stderr (or nothing, for the TUI).
	File string `mapstructure:"file"`
}

// Options tunes where Load looks. Zero values use the process environment.
type Options struct {
	// ConfigFile is an explicit config path; it must exist when set.
	ConfigFile string
	// EnvFile defaults to ".env" in the working directory; missing is fine.
	EnvFile string
	// SearchDirs replaces the default config search path.
	SearchDirs []string
}

func defaultSearchDirs() []string {
	dirs := []string{"."}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "appresp"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "appresp"))
	}
	return dirs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data", "")
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("read_only", false)
	v.SetDefault("default_sort", string(model.SortDateDesc))
	v.SetDefault("watch", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// Load returns the resolved configuration. Precedence, lowest first:
// defaults, config file, .env, environment.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("appresp")
		v.SetConfigType("yaml")
		dirs := opts.SearchDirs
		if dirs == nil {
			dirs = defaultSearchDirs()
		}
		for _, d := range dirs {
			v.AddConfigPath(d)
		}
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Data = strings.TrimSpace(c.Data)
	c.Addr = strings.TrimSpace(c.Addr)
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	o, err := model.ParseSortOrder(string(c.DefaultSort))
	if err != nil {
		return err
	}
	c.DefaultSort = o
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
