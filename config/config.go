package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Bun        BunConfig
	Verifier   Verifier
	Keys       Keys
	Invites    Invites
	LoggerMode LoggerMode
}

type Server struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type BunConfig struct {
	DSN string
}

// Verifier configures how bearer credentials are exchanged for identities.
// Mode "remote" calls the external identity service; mode "jwt" verifies
// locally signed tokens (development and tests).
type Verifier struct {
	Mode      string
	RemoteURL string
	Timeout   time.Duration
	JWTSecret string
	ExpiredIn int
}

type Keys struct {
	MaxPreKeyUpload int
}

type Invites struct {
	DefaultExpiryHours int
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	if c.Verifier.Mode == "" {
		c.Verifier.Mode = "jwt"
	}
	if c.Verifier.Timeout == 0 {
		c.Verifier.Timeout = 5 * time.Second
	}
	if c.Keys.MaxPreKeyUpload == 0 {
		c.Keys.MaxPreKeyUpload = 100
	}
	return &c, nil
}
