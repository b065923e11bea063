// Package config holds the development server configuration and the
// helpers that build it at startup.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// DefaultPort is the port used when neither a config file nor the
	// command line names one.
	DefaultPort = 8000
	// DefaultName is the product name shown in the startup banner.
	DefaultName = "eightfold"
)

// ErrInvalidPort is returned when a port is not a decimal number in 1..65535.
var ErrInvalidPort = errors.New("invalid port")

// Config is the immutable server configuration. It is created once at
// startup and passed by pointer to the server.
type Config struct {
	// Port is the TCP port to listen on, on all interfaces.
	Port int
	// Root is the absolute path of the directory files are served from.
	// Requests cannot escape it.
	Root string
	// Name is the product name printed in the banner.
	Name string
}

// Default returns a Config with the default port and name and no root.
func Default() *Config {
	return &Config{
		Port: DefaultPort,
		Name: DefaultName,
	}
}

// ParsePort parses a port argument strictly: only decimal digits, within
// the valid TCP port range.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: not a number", ErrInvalidPort, s)
	}
	if err := checkPort(port); err != nil {
		return 0, err
	}
	return port, nil
}

func checkPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w %d: must be between 1 and 65535", ErrInvalidPort, port)
	}
	return nil
}

// ExecutableRoot returns the directory containing the running executable,
// with symlinks resolved.
func ExecutableRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Abs(filepath.Dir(exe))
}

// Validate checks the port range and that Root is a readable directory.
func (c *Config) Validate() error {
	if err := checkPort(c.Port); err != nil {
		return err
	}
	if c.Root == "" {
		return errors.New("root directory not set")
	}
	if !filepath.IsAbs(c.Root) {
		return fmt.Errorf("root directory %s is not absolute", c.Root)
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root directory %s is not a directory", c.Root)
	}
	f, err := os.Open(c.Root)
	if err != nil {
		return fmt.Errorf("root directory: %w", err)
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("root directory %s is not readable: %w", c.Root, err)
	}
	return nil
}
