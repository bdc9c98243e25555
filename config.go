package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"shelfmap/internal/editor"
	"shelfmap/internal/shape"
	"shelfmap/internal/snap"
)

type Config struct {
	SaveDirectory   string        `toml:"save_directory"`
	Confirmations   bool          `toml:"confirmations"`
	Autosave        bool          `toml:"autosave"`
	LatticeWidth    float64       `toml:"lattice_width"`
	LatticeHeight   float64       `toml:"lattice_height"`
	MaxBatchEdit    int           `toml:"max_batch_edit"`
	TableIDLength   int           `toml:"table_id_length"`
	BranchNumLength int           `toml:"branch_num_length"`
	LocationFormat  string        `toml:"location_format"`
	LocationRanges  []shape.Range `toml:"location_range"`
	LogFile         string        `toml:"log_file"`
	LogLevel        string        `toml:"log_level"`
}

func defaultConfig() *Config {
	return &Config{
		Confirmations:   true,
		LatticeWidth:    10,
		LatticeHeight:   10,
		MaxBatchEdit:    100,
		TableIDLength:   3,
		BranchNumLength: 2,
		LocationFormat:  string(shape.FormatStandard),
		LogLevel:        "info",
	}
}

func configPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".shelfmaprc")
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}
	if _, err := toml.DecodeFile(path, config); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	config.SaveDirectory = expandPath(config.SaveDirectory)
	config.LogFile = expandPath(config.LogFile)
	if err := config.locationConfig().Format.Validate(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return config, nil
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

func (c *Config) lattice() snap.Lattice {
	return snap.Lattice{Width: c.LatticeWidth, Height: c.LatticeHeight}
}

func (c *Config) locationConfig() shape.LocationConfig {
	return shape.LocationConfig{
		TableIDLength:   c.TableIDLength,
		BranchNumLength: c.BranchNumLength,
		Format: shape.LocationFormat{
			Kind:   shape.FormatKind(strings.ToUpper(c.LocationFormat)),
			Ranges: c.LocationRanges,
		},
	}
}

func (c *Config) editorConfig() editor.Config {
	return editor.Config{
		Lattice:  c.lattice(),
		Location: c.locationConfig(),
		MaxBatch: c.MaxBatchEdit,
	}
}

// newLogger opens the configured log file. The terminal belongs to the
// editor, so without a log file everything is discarded.
func (c *Config) newLogger() (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("log_level: %w", err)
	}
	if c.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
