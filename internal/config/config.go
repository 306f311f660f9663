// Package config loads the server settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string `yaml:"addr"`
	// AllowOrigins is a comma separated list used for CORS and websocket
	// origin checks.
	AllowOrigins    string `yaml:"allow_origins"`
	ReadBufferSize  int    `yaml:"read_buffer_size"`
	WriteBufferSize int    `yaml:"write_buffer_size"`
	// MaxGames caps the number of hosted games; 0 means no cap.
	MaxGames int `yaml:"max_games"`
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowOrigins:    "http://localhost:5173",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		MaxGames:        1000,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	case len(c.Origins()) == 0:
		return fmt.Errorf("%w: allow_origins is empty", ErrInvalidConfig)
	case c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0:
		return fmt.Errorf("%w: buffer sizes must be positive", ErrInvalidConfig)
	case c.MaxGames < 0:
		return fmt.Errorf("%w: max_games is negative", ErrInvalidConfig)
	}
	return nil
}

// Origins splits AllowOrigins.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
