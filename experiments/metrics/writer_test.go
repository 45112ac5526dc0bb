package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catan/searcher"

	"github.com/stretchr/testify/require"
)

func TestWriterStoresRunRecords(t *testing.T) {
	chdirTemp(t)

	w, err := NewWriter("throughput")
	require.NoError(t, err, "should create a timestamped run directory")
	require.DirExists(t, w.Dir())
	require.Equal(t, "throughput", filepath.Base(filepath.Dir(w.Dir())), "runs nest under the experiment name")
}

func TestWriterRoundTripsCSV(t *testing.T) {
	chdirTemp(t)

	w, err := NewWriter("strength")
	require.NoError(t, err)

	err = w.WriteAgentConfigs([]AgentConfig{
		{ID: 0, Kind: "random", Seed: 1},
		{ID: 1, Kind: "mcts", Goroutines: 8, Duration: 10 * time.Millisecond},
	})
	require.NoError(t, err)

	now := time.Now()
	err = w.WriteGameRecords([]GameRecord{{
		ID: 1, Agent1: 0, Agent2: 1,
		GameMetric: GameMetric{Seed: 7, Winner: "blue", StartTime: now, EndTime: now, TotalMoves: 240},
	}})
	require.NoError(t, err)

	err = w.WriteMoveRecords([]MoveRecord{{
		Game: 1, Step: 0, Player: "red",
		MoveMetrics: searcher.MoveMetrics{Episodes: 120, FullPlayouts: 30},
	}})
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Len(t, rows, 3, "header plus one row per config")
	require.Equal(t, []string{"id", "kind", "seed", "goroutines", "duration", "episodes", "cutoff"}, rows[0])
	require.Equal(t, "mcts", rows[2][1])

	rows = readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, "blue", rows[1][4], "winner column should round-trip")
	require.Equal(t, "240", rows[1][8])

	rows = readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, "120", rows[1][4], "episode count should round-trip")
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
