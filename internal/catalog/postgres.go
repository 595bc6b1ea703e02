package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"github.com/brucee63/namematch/internal/table"
	"github.com/brucee63/namematch/pkg/config"
)

// Loader reads candidate rows from a Postgres table.
type Loader struct {
	db     *sql.DB
	cfg    config.CatalogConfig
	logger *slog.Logger
}

// NewLoader creates a Loader for the configured table and columns.
func NewLoader(db *sql.DB, cfg config.CatalogConfig) *Loader {
	return &Loader{
		db:     db,
		cfg:    cfg,
		logger: slog.Default().With("component", "catalog-loader", "table", cfg.Table),
	}
}

// Load selects the configured columns and returns them as rows. NULL values
// read as the empty string, matching the engine's empty-string scoring
// semantics for malformed values.
func (l *Loader) Load(ctx context.Context) ([]table.Row, error) {
	if l.cfg.Table == "" || len(l.cfg.Columns) == 0 {
		return nil, fmt.Errorf("catalog table and columns must be configured")
	}

	quoted := make([]string, len(l.cfg.Columns))
	for i, col := range l.cfg.Columns {
		quoted[i] = pq.QuoteIdentifier(col)
	}
	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(quoted, ", "),
		pq.QuoteIdentifier(l.cfg.Table),
	)

	dbRows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer dbRows.Close()

	var rows []table.Row
	for dbRows.Next() {
		values := make([]sql.NullString, len(l.cfg.Columns))
		scanArgs := make([]any, len(values))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := dbRows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("scanning candidate row: %w", err)
		}
		row := make(table.Row, len(values))
		for i, col := range l.cfg.Columns {
			row[col] = values[i].String
		}
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}

	l.logger.Info("candidates loaded", "rows", len(rows))
	return rows, nil
}
