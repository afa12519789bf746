package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/dancesim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlphabet   = "abcdefghijklmnop"
	DefaultRounds     = 1
	DefaultMaxHistory = sim.DefaultMaxHistory
	DefaultMovesFile  = "input.txt"
	LongRunRounds     = 1_000_000_000
)

type Config struct {
	Alphabet    string   `yaml:"alphabet" toml:"alphabet"`
	Rounds      int      `yaml:"rounds" toml:"rounds"`
	MovesFile   string   `yaml:"moves_file" toml:"moves_file"`
	MaxHistory  int      `yaml:"max_history" toml:"max_history"`
	KeepHistory bool     `yaml:"keep_history" toml:"keep_history"`
	Metrics     []string `yaml:"metrics" toml:"metrics"`
}

func DefaultConfig() *Config {
	return &Config{
		Alphabet:    DefaultAlphabet,
		Rounds:      DefaultRounds,
		MovesFile:   DefaultMovesFile,
		MaxHistory:  DefaultMaxHistory,
		KeepHistory: true,
		Metrics:     []string{"displacement", "fixed_points", "rounds_observed"},
	}
}

// Load reads a YAML config, or TOML when the file ends in .toml. Fields
// missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
