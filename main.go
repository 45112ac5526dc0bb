package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"catan/agent"
	"catan/config"
	"catan/engine"
	"catan/experiments"
	"catan/game"
	"catan/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	experiment := flag.String("experiment", "", "Experiment to run: throughput, strength, parallelization or cutoff")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *experiment != "" {
		cfg.Experiment = *experiment
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", cfg.LogLevel)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	switch cfg.Experiment {
	case "throughput":
		experiments.RunThroughputExperiment()
	case "strength":
		experiments.RunStrengthExperiment()
	case "parallelization":
		experiments.RunParallelizationExperiment()
	case "cutoff":
		experiments.RunCutoffExperiment()
	case "":
		runExhibition(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown experiment %q\n", cfg.Experiment)
		os.Exit(1)
	}
}

// runExhibition plays one game between the configured agents and logs every
// event as it happens.
func runExhibition(cfg config.Config) {
	state, err := game.NewGame(cfg.GameSeed)
	if err != nil {
		log.Fatal().Err(err).Uint64("seed", cfg.GameSeed).Msg("failed to build game")
	}

	e := engine.NewLocal(state, newAgent(cfg.Red), newAgent(cfg.Blue))
	e.Subscribe(func(event game.Event) {
		log.Info().
			Str("event", event.Type.String()).
			Str("player", event.Player.Label()).
			Msg("game event")
	})

	result, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}
	if result.Winner == "" {
		log.Info().Int("moves", result.Moves).Msg("no winner within the move cap")
		return
	}
	log.Info().Str("winner", result.Winner).Int("moves", result.Moves).Msg("game over")
}

func newAgent(a config.Agent) agent.Agent {
	if a.Kind == "random" {
		return agent.NewRandom(a.Seed)
	}

	options := []searcher.Option{}
	if a.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(a.Episodes))
	}
	if a.Duration > 0 {
		options = append(options, searcher.WithDuration(time.Duration(a.Duration)))
	}
	if a.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(a.Cutoff))
	}
	return agent.NewMCTS(searcher.NewMCTS(a.Goroutines, options...))
}
