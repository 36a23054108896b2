// Package runstore keeps the audit trail of pipeline runs: one row per
// processed article recording where it landed and how the run ended.
package runstore

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/coverage-cli/internal/model"
)

// Filter specifies criteria for listing runs.
type Filter struct {
	Status  model.RunStatus
	Company string
	Limit   int
}

// Store defines the run audit persistence interface.
type Store interface {
	CreateRun(ctx context.Context, articleURL string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID, company, quarter string, facts int) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter Filter) ([]model.Run, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Open dispatches on driver name. Supported drivers: sqlite, postgres.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("runstore: unknown driver %q", driver)
	}
}
