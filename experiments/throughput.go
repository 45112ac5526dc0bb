package experiments

import (
	"time"

	"catan/experiments/metrics"
)

// RunThroughputExperiment measures search episodes per time budget as the
// goroutine count doubles. Both players share a config so games stay at
// comparable strength and length.
func RunThroughputExperiment() {
	const Duration = 10 * time.Millisecond
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: KindMCTS, Goroutines: 1, Duration: Duration},
		{ID: 2, Kind: KindMCTS, Goroutines: 2, Duration: Duration},
		{ID: 3, Kind: KindMCTS, Goroutines: 4, Duration: Duration},
		{ID: 4, Kind: KindMCTS, Goroutines: 8, Duration: Duration},
		{ID: 5, Kind: KindMCTS, Goroutines: 16, Duration: Duration},
		{ID: 6, Kind: KindMCTS, Goroutines: 32, Duration: Duration},
		{ID: 7, Kind: KindMCTS, Goroutines: 64, Duration: Duration},
		{ID: 8, Kind: KindMCTS, Goroutines: 128, Duration: Duration},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	runExperiment("throughput", configs, matchUps)
}
