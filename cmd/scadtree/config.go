package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/chazu/scadtree/pkg/engine"
	"github.com/chazu/scadtree/pkg/kernel/sdfx"
	"github.com/chazu/scadtree/pkg/scene"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML file given with --config. Command line flags
// override the values it sets.
type Config struct {
	Timeout   time.Duration  `yaml:"timeout"`    // per-script evaluation limit
	OutDir    string         `yaml:"out_dir"`    // empty writes next to each script
	Jobs      int            `yaml:"jobs"`       // scripts evaluated at once
	MeshCells int            `yaml:"mesh_cells"` // preview marching cubes resolution
	Defaults  scene.Defaults `yaml:"defaults"`   // $fa/$fn/$fs for every scene
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Timeout:   engine.EvalTimeout,
		Jobs:      runtime.NumCPU(),
		MeshCells: sdfx.DefaultMeshCells,
	}
}

// LoadConfig reads path over DefaultConfig. An empty path returns the
// defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case c.Jobs < 1:
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	case c.MeshCells < 1:
		return fmt.Errorf("mesh_cells must be at least 1, got %d", c.MeshCells)
	}
	return nil
}
