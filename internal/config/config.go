// Package config loads the YAML configuration shared by the CLI commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/idfusion/infinite-grid/internal/grid"
	"github.com/idfusion/infinite-grid/internal/validate"
)

const (
	DefaultPath        = "~/.config/infinite-grid/config.yaml"
	DefaultStorageFile = "~/.config/infinite-grid/sessions.json"

	defaultCellWidth  = 10.0
	defaultCellHeight = 20.0
	defaultScrollStep = 1
)

// Terminal maps terminal cells to screen units for the interactive explorer.
type Terminal struct {
	CellWidth  float64 `yaml:"cell_width" validate:"gt=0,finite"`
	CellHeight float64 `yaml:"cell_height" validate:"gt=0,finite"`
	// ScrollStep is the number of cells an arrow key scrolls.
	ScrollStep int `yaml:"scroll_step" validate:"gte=1"`
}

type Config struct {
	Grid        grid.Config `yaml:"grid"`
	Terminal    Terminal    `yaml:"terminal"`
	StorageFile string      `yaml:"storage_file" validate:"required"`
}

func Default() Config {
	return Config{
		Grid: grid.DefaultConfig(),
		Terminal: Terminal{
			CellWidth:  defaultCellWidth,
			CellHeight: defaultCellHeight,
			ScrollStep: defaultScrollStep,
		},
		StorageFile: DefaultStorageFile,
	}
}

// Load reads the file at path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	expanded, err := ExpandTilde(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		logrus.Debugf("no config at %s; using defaults", expanded)
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", expanded, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	logrus.Debug("Loaded config from: ", expanded)
	return cfg, nil
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExpandTilde expands a leading tilde to the user's home directory.
func ExpandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
