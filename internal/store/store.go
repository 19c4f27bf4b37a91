// Package store handles SQLite persistence of game history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wortdrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// BackendSQLite is the only supported backend.
const BackendSQLite = "sqlite"

// Options selects the backend and its location.
type Options struct {
	Backend string
	Path    string
}

// Store wraps SQLite access for game history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database and applies migrations.
func Open(opts Options) (*Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendSQLite
	}
	if backend != BackendSQLite {
		return nil, fmt.Errorf("%w: unsupported backend %q", model.ErrPersistence, opts.Backend)
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("%w: database path is empty", model.ErrPersistence)
	}
	if !strings.HasPrefix(opts.Path, "file:") {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, wrap("create db dir", err)
		}
	}
	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, wrap("open db", err)
	}
	// One connection keeps pragmas in effect and serializes writes.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, wrap("migrate", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			game_type TEXT NOT NULL,
			mode TEXT NOT NULL,
			total_questions INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			success_rate REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id INTEGER NOT NULL REFERENCES games(id),
			word_german TEXT NOT NULL,
			word_italian TEXT NOT NULL,
			user_answer TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			penalty REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_timestamp ON games(timestamp);`,
		`CREATE INDEX IF NOT EXISTS idx_errors_game_id ON errors(game_id);`,
		`CREATE INDEX IF NOT EXISTS idx_errors_word_german ON errors(word_german);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
}

// SaveGame stores a game and its errors in one transaction.
func (s *Store) SaveGame(ctx context.Context, game model.GameRecord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrap("begin save", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (timestamp, game_type, mode, total_questions, correct_answers, success_rate)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		game.PlayedAt.Format(time.RFC3339Nano),
		game.GameType,
		game.Mode,
		game.TotalQuestions,
		game.CorrectAnswers,
		game.SuccessRate,
	)
	if err != nil {
		return 0, wrap("insert game", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, wrap("game id", err)
	}

	if len(game.Errors) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO errors (game_id, word_german, word_italian, user_answer, correct_answer, penalty)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, wrap("prepare errors", err)
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, e := range game.Errors {
			if _, err = stmt.ExecContext(ctx, id, e.WordGerman, e.WordItalian, e.UserAnswer, e.CorrectAnswer, e.Penalty); err != nil {
				return 0, wrap("insert error", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, wrap("commit save", err)
	}
	return id, nil
}

// MostCommonErrors returns the words with the most recorded errors.
func (s *Store) MostCommonErrors(ctx context.Context, limit int) ([]model.ErrorCount, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT word_german, word_italian, COUNT(*) AS error_count
		 FROM errors
		 GROUP BY word_german, word_italian
		 ORDER BY error_count DESC, word_german ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, wrap("query common errors", err)
	}
	return scanErrorCounts(rows)
}

// MostCommonErrorsByType returns words with at least minErrors errors in
// games whose type contains gameType, most errors first.
func (s *Store) MostCommonErrorsByType(ctx context.Context, gameType string, minErrors int) ([]model.ErrorCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.word_german, MAX(e.word_italian), COUNT(*) AS error_count
		 FROM errors e
		 JOIN games g ON g.id = e.game_id
		 WHERE instr(g.game_type, ?) > 0
		 GROUP BY e.word_german
		 HAVING COUNT(*) >= ?
		 ORDER BY error_count DESC, e.word_german ASC`, gameType, minErrors)
	if err != nil {
		return nil, wrap("query errors by type", err)
	}
	return scanErrorCounts(rows)
}

func scanErrorCounts(rows *sql.Rows) ([]model.ErrorCount, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var result []model.ErrorCount
	for rows.Next() {
		var ec model.ErrorCount
		if err := rows.Scan(&ec.German, &ec.Italian, &ec.Count); err != nil {
			return nil, wrap("scan error count", err)
		}
		result = append(result, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate error counts", err)
	}
	return result, nil
}

// StatsByType aggregates games whose type contains gameType. The boolean is
// false when no such game exists.
func (s *Store) StatsByType(ctx context.Context, gameType string) (model.TypeStats, bool, error) {
	stats := model.TypeStats{GameType: gameType}
	var avg sql.NullFloat64
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(success_rate), SUM(total_questions)
		 FROM games
		 WHERE instr(game_type, ?) > 0`, gameType).Scan(&stats.Games, &avg, &total)
	if err != nil {
		return model.TypeStats{}, false, wrap("query stats by type", err)
	}
	if stats.Games == 0 {
		return stats, false, nil
	}
	stats.AvgSuccess = avg.Float64
	stats.TotalQuestions = int(total.Int64)
	return stats, true, nil
}

// GameHistory returns one page of games, most recent first.
func (s *Store) GameHistory(ctx context.Context, limit, offset int) ([]model.GameRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, game_type, mode, total_questions, correct_answers, success_rate
		 FROM games
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, wrap("query history", err)
	}
	return scanGames(rows)
}

// ListGames returns every game since the given time, oldest first.
func (s *Store) ListGames(ctx context.Context, since *time.Time) ([]model.GameRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, timestamp, game_type, mode, total_questions, correct_answers, success_rate
		FROM games
		WHERE %s
		ORDER BY timestamp ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("query games", err)
	}
	return scanGames(rows)
}

// GameErrors returns the errors recorded for one game in insertion order.
func (s *Store) GameErrors(ctx context.Context, gameID int64) ([]model.ErrorRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word_german, word_italian, user_answer, correct_answer, penalty
		 FROM errors
		 WHERE game_id = ?
		 ORDER BY id ASC`, gameID)
	if err != nil {
		return nil, wrap("query game errors", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var result []model.ErrorRecord
	for rows.Next() {
		var e model.ErrorRecord
		if err := rows.Scan(&e.WordGerman, &e.WordItalian, &e.UserAnswer, &e.CorrectAnswer, &e.Penalty); err != nil {
			return nil, wrap("scan game error", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate game errors", err)
	}
	return result, nil
}

func scanGames(rows *sql.Rows) ([]model.GameRecord, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var games []model.GameRecord
	for rows.Next() {
		var g model.GameRecord
		var ts string
		if err := rows.Scan(&g.ID, &ts, &g.GameType, &g.Mode, &g.TotalQuestions, &g.CorrectAnswers, &g.SuccessRate); err != nil {
			return nil, wrap("scan game", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, wrap("parse timestamp", err)
		}
		g.PlayedAt = parsed
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate games", err)
	}
	return games, nil
}
