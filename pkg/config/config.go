package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ReiseArnor/lpp/pkg/evaluator"
)

// FileName is looked up in the user's home directory when no explicit path
// is given.
const FileName = ".lpp.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings of the command-line front end.
type Config struct {
	Prompt      string `yaml:"prompt"`
	ExitCommand string `yaml:"exit_command"`
	HistoryFile string `yaml:"history_file"`
	GasLimit    int    `yaml:"gas_limit"`
	MaxDepth    int    `yaml:"max_depth"`
	Color       bool   `yaml:"color"`
}

func Default() *Config {
	return &Config{
		Prompt:      ">> ",
		ExitCommand: "salir()",
		HistoryFile: ".lpp_history",
		GasLimit:    0,
		MaxDepth:    evaluator.DefaultMaxDepth,
		Color:       true,
	}
}

// Load reads the YAML file at path over the defaults. An empty path means
// $HOME/.lpp.yaml, and that file may be absent.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, FileName)
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var issues []string
	if c.Prompt == "" {
		issues = append(issues, "prompt must not be empty")
	}
	if c.GasLimit < 0 {
		issues = append(issues, fmt.Sprintf("gas_limit must be >= 0, got %d", c.GasLimit))
	}
	if c.MaxDepth < 0 {
		issues = append(issues, fmt.Sprintf("max_depth must be >= 0, got %d", c.MaxDepth))
	}
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(issues, "; "))
}

// EvaluatorOptions translates the limits into evaluator options.
func (c *Config) EvaluatorOptions() []evaluator.Option {
	return []evaluator.Option{
		evaluator.WithGasLimit(c.GasLimit),
		evaluator.WithMaxDepth(c.MaxDepth),
	}
}

// HistoryPath resolves HistoryFile against dir when it is relative. An
// empty HistoryFile disables history.
func (c *Config) HistoryPath(dir string) string {
	if c.HistoryFile == "" || filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(dir, c.HistoryFile)
}
