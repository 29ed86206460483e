// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the game, SSH and web commands.
type Config struct {
	SSHHost        string `env:"SSH_HOST" envDefault:"::"`
	SSHPort        int    `env:"SSH_PORT" envDefault:"2222"`
	SSHHostKey     string `env:"SSH_HOST_KEY" envDefault:"/app/keys/host_key"`
	SSHDisplayHost string `env:"SSH_DISPLAY_HOST"` // Host shown on the landing page; defaults to the request host

	WebHost string `env:"WEB_HOST" envDefault:"0.0.0.0"`
	WebPort int    `env:"WEB_PORT" envDefault:"8080"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	FPS   int  `env:"GAME_FPS" envDefault:"60"`
	Sound bool `env:"GAME_SOUND" envDefault:"true"`

	InactivityWarn       time.Duration `env:"INACTIVITY_WARN" envDefault:"90s"`
	InactivityDisconnect time.Duration `env:"INACTIVITY_DISCONNECT" envDefault:"120s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load parses and validates the configuration.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("GAME_FPS must be positive, got %d", c.FPS)
	case c.SSHPort <= 0 || c.SSHPort > 65535:
		return fmt.Errorf("SSH_PORT out of range: %d", c.SSHPort)
	case c.WebPort <= 0 || c.WebPort > 65535:
		return fmt.Errorf("WEB_PORT out of range: %d", c.WebPort)
	case c.InactivityWarn <= 0 || c.InactivityDisconnect <= 0:
		return errors.New("inactivity timeouts must be positive")
	case c.InactivityWarn >= c.InactivityDisconnect:
		return fmt.Errorf("INACTIVITY_WARN (%s) must be shorter than INACTIVITY_DISCONNECT (%s)", c.InactivityWarn, c.InactivityDisconnect)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// SSHAddr is the listen address of the SSH server.
func (c Config) SSHAddr() string {
	return net.JoinHostPort(c.SSHHost, strconv.Itoa(c.SSHPort))
}

// WebAddr is the listen address of the web server.
func (c Config) WebAddr() string {
	return net.JoinHostPort(c.WebHost, strconv.Itoa(c.WebPort))
}
