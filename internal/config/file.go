package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File names looked up in the root directory, in order. The first one
// found wins.
const (
	TOMLFile = "eightfold.toml"
	YAMLFile = "eightfold.yaml"
)

// fileConfig mirrors the keys accepted in a config file. Zero values mean
// "not set".
type fileConfig struct {
	Port int    `toml:"port" yaml:"port"`
	Name string `toml:"name" yaml:"name"`
}

// LoadFile applies an optional config file from dir onto cfg.
// A missing file is not an error; a malformed one is.
func LoadFile(dir string, cfg *Config) error {
	for _, name := range []string{TOMLFile, YAMLFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		var fc fileConfig
		if name == TOMLFile {
			err = toml.Unmarshal(data, &fc)
		} else {
			err = yaml.Unmarshal(data, &fc)
		}
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		log.Printf("Loaded config from %s", path)
		return fc.apply(cfg)
	}
	return nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.Port != 0 {
		if err := checkPort(fc.Port); err != nil {
			return err
		}
		cfg.Port = fc.Port
	}
	if fc.Name != "" {
		cfg.Name = fc.Name
	}
	return nil
}
