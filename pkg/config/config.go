// Package config loads the YAML configuration shared by the commands.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/anrid/world-fertility/pkg/logging"
	"github.com/anrid/world-fertility/pkg/plot"
)

type Config struct {
	Data         string        `yaml:"data"`
	Addr         string        `yaml:"addr"`
	DefaultYear  int           `yaml:"default_year"`
	LogLevel     string        `yaml:"log_level"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	Chart        plot.Layout   `yaml:"chart"`
}

func Default() Config {
	return Config{
		Data:         "./data/dataEveryYear.csv",
		Addr:         ":8080",
		DefaultYear:  1960,
		LogLevel:     "info",
		FetchTimeout: 30 * time.Second,
		Chart:        plot.DefaultLayout(),
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Data == "" {
		return errors.New("config: data source is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("config: fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	if err := c.Chart.Validate(); err != nil {
		return fmt.Errorf("config: chart: %w", err)
	}
	return nil
}

// RegisterFlags binds the command-line overrides to c.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Data, "data", c.Data, "dataset path or URL (.csv, .xls, .xlsx)")
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.IntVar(&c.DefaultYear, "year", c.DefaultYear, "year selected at start")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.DurationVar(&c.FetchTimeout, "fetch-timeout", c.FetchTimeout, "timeout for remote datasets")
}

// Parse loads the file named by -config and applies the other flags on top.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var path string
	pre := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
	pre.SetOutput(nopWriter{})
	pre.StringVar(&path, "config", "", "")
	pre.Usage = func() {}
	// Only -config is of interest here; the real parse below reports errors.
	_ = pre.Parse(filterConfigArgs(args))

	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}

	fs.String("config", path, "YAML configuration file")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// filterConfigArgs keeps only the -config flag and its value.
func filterConfigArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-config" || a == "--config":
			if i+1 < len(args) {
				out = append(out, a, args[i+1])
				i++
			}
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			out = append(out, a)
		}
	}
	return out
}
