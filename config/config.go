// Package config loads run settings from YAML: log level, which experiment
// to run, and the agent pairing for single exhibition games.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses YAML scalars like "10ms" or "2s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Agent configures one side of an exhibition game.
type Agent struct {
	Kind       string   `yaml:"kind"` // "random" or "mcts"
	Seed       uint64   `yaml:"seed"`
	Goroutines int      `yaml:"goroutines"`
	Duration   Duration `yaml:"duration"`
	Episodes   int      `yaml:"episodes"`
	Cutoff     int      `yaml:"cutoff"`
}

// Config is the top-level run configuration.
type Config struct {
	LogLevel   string `yaml:"log_level"`
	Experiment string `yaml:"experiment"` // empty runs a single exhibition game
	GameSeed   uint64 `yaml:"game_seed"`
	Red        Agent  `yaml:"red"`
	Blue       Agent  `yaml:"blue"`
}

// Default is the configuration used when no file is given: an exhibition
// game between a random baseline and an 8-goroutine searcher.
func Default() Config {
	return Config{
		LogLevel: "info",
		GameSeed: 1,
		Red:      Agent{Kind: "random", Seed: 1},
		Blue:     Agent{Kind: "mcts", Goroutines: 8, Duration: Duration(100 * time.Millisecond)},
	}
}

// Load reads a YAML config file, filling unset fields from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run.
func (c Config) Validate() error {
	switch c.Experiment {
	case "", "throughput", "strength", "parallelization", "cutoff":
	default:
		return fmt.Errorf("unknown experiment %q", c.Experiment)
	}
	for _, a := range []Agent{c.Red, c.Blue} {
		switch a.Kind {
		case "random":
		case "mcts":
			if a.Goroutines <= 0 {
				return fmt.Errorf("mcts agent needs goroutines > 0")
			}
			if a.Episodes <= 0 && a.Duration <= 0 {
				return fmt.Errorf("mcts agent needs episodes or duration")
			}
		default:
			return fmt.Errorf("unknown agent kind %q", a.Kind)
		}
	}
	return nil
}
