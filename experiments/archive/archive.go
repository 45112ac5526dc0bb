// Package archive persists finished self-play games to SQLite so experiment
// runs can be inspected and replayed after the process exits.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"catan/game"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	seed       INTEGER NOT NULL,
	winner     TEXT NOT NULL,
	moves      INTEGER NOT NULL,
	snapshot   BLOB NOT NULL,
	hash       TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS actions (
	game_id INTEGER NOT NULL REFERENCES games(id),
	idx     INTEGER NOT NULL,
	player  TEXT NOT NULL,
	action  BLOB NOT NULL,
	after   INTEGER NOT NULL,
	PRIMARY KEY (game_id, idx)
);`

// Archive is a SQLite-backed store of game snapshots and transcripts.
type Archive struct {
	db *sql.DB
}

// Open opens (or creates) an archive at the given path and applies the schema.
func Open(path string) (*Archive, error) {
	if path == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping archive: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close is nil-safe so callers can defer it on all startup paths.
func (a *Archive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// SaveGame stores the final snapshot and full transcript of a finished game
// in one transaction and returns the archive id.
func (a *Archive) SaveGame(ctx context.Context, final *game.GameState, records []game.ActionRecord) (int64, error) {
	snap := final.Snapshot()
	data, err := snap.Encode()
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}
	hash, err := snap.ContentHash()
	if err != nil {
		return 0, fmt.Errorf("hash snapshot: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (seed, winner, moves, snapshot, hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		int64(final.Rand.Seed), final.Winner(), len(records), data, hash, time.Now().UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("game id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO actions (game_id, idx, player, action, after) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare action insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		encoded, err := json.Marshal(rec.Action)
		if err != nil {
			return 0, fmt.Errorf("encode action %d: %w", rec.Index, err)
		}
		if _, err := stmt.ExecContext(ctx, id, rec.Index, rec.Player, encoded, int64(rec.After)); err != nil {
			return 0, fmt.Errorf("insert action %d: %w", rec.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit archive tx: %w", err)
	}
	return id, nil
}

// LoadGame restores a stored game's final state and transcript.
func (a *Archive) LoadGame(ctx context.Context, id int64) (*game.GameState, []game.ActionRecord, error) {
	var data []byte
	err := a.db.QueryRowContext(ctx, `SELECT snapshot FROM games WHERE id = ?`, id).Scan(&data)
	if err != nil {
		return nil, nil, fmt.Errorf("load game %d: %w", id, err)
	}
	snap, err := game.DecodeSnapshot(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode game %d: %w", id, err)
	}
	state, err := snap.Restore()
	if err != nil {
		return nil, nil, fmt.Errorf("restore game %d: %w", id, err)
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT idx, player, action, after FROM actions WHERE game_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load actions %d: %w", id, err)
	}
	defer rows.Close()

	var records []game.ActionRecord
	for rows.Next() {
		var rec game.ActionRecord
		var encoded []byte
		var after int64
		if err := rows.Scan(&rec.Index, &rec.Player, &encoded, &after); err != nil {
			return nil, nil, fmt.Errorf("scan action: %w", err)
		}
		if err := json.Unmarshal(encoded, &rec.Action); err != nil {
			return nil, nil, fmt.Errorf("decode action %d: %w", rec.Index, err)
		}
		rec.After = game.StateHash(after)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate actions: %w", err)
	}
	return state, records, nil
}

// GameSummary is one row of the archive listing.
type GameSummary struct {
	ID        int64
	Seed      uint64
	Winner    string
	Moves     int
	CreatedAt time.Time
}

// Games lists stored games, newest first.
func (a *Archive) Games(ctx context.Context) ([]GameSummary, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, seed, winner, moves, created_at FROM games ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var summaries []GameSummary
	for rows.Next() {
		var s GameSummary
		var seed, createdAt int64
		if err := rows.Scan(&s.ID, &seed, &s.Winner, &s.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		s.Seed = uint64(seed)
		s.CreatedAt = time.UnixMilli(createdAt).UTC()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return summaries, nil
}
