package bootstrap

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GregMSThompson/sales-weather/pkg/logger"
)

type failingExecer struct {
	failOn string
	ran    []string
}

func (f *failingExecer) Exec(query string, _ ...any) (sql.Result, error) {
	f.ran = append(f.ran, query)
	if query == f.failOn {
		return nil, errors.New("database is locked")
	}
	return nil, nil
}

func TestApplyPragmasWarnsAndContinues(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewCloudRunHandlerTo(&buf, slog.LevelDebug))
	db := &failingExecer{failOn: sqlitePragmas[0]}

	applyPragmas(db, log, sqlitePragmas...)

	if len(db.ran) != len(sqlitePragmas) {
		t.Fatalf("expected every pragma to run, ran %v", db.ran)
	}
	out := buf.String()
	if !strings.Contains(out, `"severity":"WARNING"`) || !strings.Contains(out, "database is locked") {
		t.Fatalf("expected a warning for the failed pragma, got %s", out)
	}
	if strings.Count(out, "sqlite pragma failed") != 1 {
		t.Fatalf("only the failing pragma should be logged, got %s", out)
	}
}

func TestInitSQLiteLogsNothingOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewCloudRunHandlerTo(&buf, slog.LevelDebug))

	db, err := InitSQLite(filepath.Join(t.TempDir(), "warehouse.db"), log)
	if err != nil {
		t.Fatalf("InitSQLite error: %v", err)
	}
	defer db.Close()
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}
