package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func InitSQLite(path string, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	applyPragmas(db, log, sqlitePragmas...)
	return db, nil
}

// applyPragmas is best effort; a failed pragma leaves the connection usable.
func applyPragmas(db execer, log *slog.Logger, pragmas ...string) {
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			log.Warn("sqlite pragma failed", "pragma", p, "error", err)
		}
	}
}
