// Package config loads eosiogo's handful of CLI/server settings via viper,
// mirroring the teacher's pkg/config shape trimmed to what this module
// actually needs.
//
// Version: v0.1.0
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified settings shape for cmd/eosioctl and internal/server.
type Config struct {
	// DefaultChainAlias names the chain alias (see signingrequest) assumed
	// when a signing request's chain id is the "unknown" alias and no
	// override is given.
	DefaultChainAlias string `mapstructure:"default_chain_alias"`
	// LogLevel is a logrus level name (trace|debug|info|warn|error).
	LogLevel string `mapstructure:"log_level"`
	// CallbackInflateCapBytes bounds the inflated size of a compressed
	// signing-request payload (§4.6, §5: "MUST cap inflated size").
	CallbackInflateCapBytes int64 `mapstructure:"callback_inflate_cap_bytes"`
	// ServerAddr is the listen address for internal/server's demo HTTP
	// surface.
	ServerAddr string `mapstructure:"server_addr"`
}

// AppConfig holds the configuration loaded via Load.
var AppConfig Config

// defaults are applied before any file or environment override is read.
func defaults() Config {
	return Config{
		DefaultChainAlias:       "eos",
		LogLevel:                "info",
		CallbackInflateCapBytes: 5 << 20,
		ServerAddr:              ":8088",
	}
}

// Load reads an optional .env file, then EOSIOGO_-prefixed environment
// variables and an optional config file named "eosioctl" on the given
// search paths, merging over the package defaults. The result is stored in
// AppConfig and returned.
func Load(searchPaths ...string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	viper.SetDefault("default_chain_alias", cfg.DefaultChainAlias)
	viper.SetDefault("log_level", cfg.LogLevel)
	viper.SetDefault("callback_inflate_cap_bytes", cfg.CallbackInflateCapBytes)
	viper.SetDefault("server_addr", cfg.ServerAddr)

	viper.SetConfigName("eosioctl")
	viper.SetConfigType("yaml")
	for _, p := range searchPaths {
		viper.AddConfigPath(p)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("EOSIOGO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &AppConfig, nil
}
