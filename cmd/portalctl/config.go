package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is ~/.acsportal/config.toml.
type Config struct {
	ServerURL string `toml:"server_url"`
	StateFile string `toml:"state_file"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".acsportal", "config.toml")
	}
	return filepath.Join(home, ".acsportal", "config.toml")
}

// loadConfig reads path, falling back to defaults when it does not exist.
// A relative state_file is resolved against the config directory.
func loadConfig(path string) (Config, error) {
	cfg := Config{
		ServerURL: "http://localhost:8080",
		StateFile: "state.db",
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if env := os.Getenv("PORTAL_SERVER_URL"); env != "" {
		cfg.ServerURL = env
	}
	if !filepath.IsAbs(cfg.StateFile) {
		cfg.StateFile = filepath.Join(filepath.Dir(path), cfg.StateFile)
	}
	return cfg, nil
}

// saveConfig writes cfg to path, creating the directory.
func saveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
