// Package experiments runs agent matchups over many games and stores the
// results as CSV records plus a SQLite archive of every finished game.
package experiments

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"catan/agent"
	"catan/engine"
	"catan/experiments/archive"
	"catan/experiments/metrics"
	"catan/game"
	"catan/searcher"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond

	KindRandom = "random"
	KindMCTS   = "mcts"
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindMCTS, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Kind: KindMCTS, Goroutines: 4, Duration: TimeBudget},
	{ID: 3, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget},
	{ID: 4, Kind: KindMCTS, Goroutines: 16, Duration: TimeBudget},
	{ID: 5, Kind: KindMCTS, Goroutines: 32, Duration: TimeBudget},
	{ID: 6, Kind: KindMCTS, Goroutines: 64, Duration: TimeBudget},
	{ID: 7, Kind: KindMCTS, Goroutines: 128, Duration: TimeBudget},
}

// RunStrengthExperiment pits a uniform-random baseline against MCTS agents
// of increasing parallelism to measure playing strength.
func RunStrengthExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindRandom, Seed: 1}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("strength", append([]metrics.AgentConfig{baseline}, parallelConfigs...), matchUps)
}

// RunParallelizationExperiment pairs a sequential MCTS baseline against
// parallel variants of the same time budget.
func RunParallelizationExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("parallelization", append(parallelConfigs, baseline), matchUps)
}

// RunCutoffExperiment compares full playouts against depth-cutoff rollouts
// scored by the production heuristic.
func RunCutoffExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget} // Full playout
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration}, // Baseline equivalent
		{ID: 2, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 50},
		{ID: 3, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 150},
		{ID: 4, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 300},
		{ID: 5, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 500},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("cutoff", cutoffConfigs, matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) {
	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}
	store, err := archive.Open(filepath.Join(writer.Dir(), "games.db"))
	if err != nil {
		panic(fmt.Sprintf("failed to open game archive: %v", err))
	}
	defer store.Close()

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < NumGames; i++ {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchUps), i+1, NumGames)

			seed := uint64(mi*NumGames + i + 1)
			result, gameMetric := runGame(seed, config1, config2)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for step, search := range result.Searches {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:        count,
					Step:        step,
					Player:      result.Records[step].Player,
					MoveMetrics: search,
				})
			}

			if _, err := store.SaveGame(context.Background(), result.Final, result.Records); err != nil {
				panic(fmt.Sprintf("failed to archive game: %v", err))
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write game records: %v", err))
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write move records: %v", err))
	}
	log.Info().Msg("stored move records")
}

// runGame plays a single seeded game between two configured agents.
func runGame(seed uint64, config1, config2 metrics.AgentConfig) (engine.Result, metrics.GameMetric) {
	state, err := game.NewGame(seed)
	if err != nil {
		panic(fmt.Sprintf("failed to build game %d: %v", seed, err))
	}
	e := engine.NewLocal(state, newAgent(config1), newAgent(config2))

	start := time.Now()
	result, err := e.Run()
	if err != nil {
		panic(fmt.Sprintf("game %d failed: %v", seed, err))
	}
	end := time.Now()

	return result, metrics.GameMetric{
		Seed:       seed,
		Winner:     result.Winner,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: result.Moves,
	}
}

func newAgent(config metrics.AgentConfig) agent.Agent {
	if config.Kind == KindRandom {
		return agent.NewRandom(config.Seed)
	}
	return agent.NewMCTS(createMCTS(config))
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
