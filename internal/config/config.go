// Package config resolves the run settings from flags, the environment,
// a .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the tool.
	EnvPrefix = "PROFILE_README"
	// FileName is the config file looked up in the working directory, without extension.
	FileName = ".profile-readme"

	DefaultReadme = "README.md"
	DefaultTop    = 5
	DefaultAPIURL = "https://api.github.com/"
)

var (
	ErrMissingToken = errors.New("GITHUB_TOKEN is not set")
	ErrMissingUser  = errors.New("no GitHub user given, use --user or PROFILE_README_USER")
)

// Config holds the settings of one run.
type Config struct {
	User       string `mapstructure:"user"`
	Token      string `mapstructure:"token"`
	Readme     string `mapstructure:"readme"`
	Top        int    `mapstructure:"top"`
	APIURL     string `mapstructure:"api_url"`
	GraphQLURL string `mapstructure:"graphql_url"`
	Verbose    bool   `mapstructure:"verbose"`
}

// New returns a viper instance with the defaults and environment bindings in place.
// Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("user", "")
	v.SetDefault("token", "")
	v.SetDefault("readme", DefaultReadme)
	v.SetDefault("top", DefaultTop)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("graphql_url", "")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The token is usually provided the way CI runners expose it.
	if err := v.BindEnv("token", EnvPrefix+"_TOKEN", "GITHUB_TOKEN"); err != nil {
		panic(fmt.Sprintf("bind token environment: %v", err))
	}
	return v
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// is given. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the config file and resolves the final settings.
// An explicit file must exist; the default one is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Top <= 0 {
		cfg.Top = DefaultTop
	}
	if cfg.Readme == "" {
		cfg.Readme = DefaultReadme
	}
	return cfg, nil
}

// Validate reports the settings a run cannot start without.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.User == "" {
		return ErrMissingUser
	}
	return nil
}
