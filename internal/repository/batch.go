package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"courtiq/pipeline/internal/metrics"
)

// execer is the slice of pgxpool.Pool the batcher needs. Tests provide
// a stub implementation.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UpsertSpec describes one batched upsert target: a table, its insert
// columns, and the unique key the upsert resolves conflicts on.
type UpsertSpec struct {
	Table       string
	Columns     []string
	ConflictKey []string
	BatchSize   int
}

// Apply splits rows into chunks of at most BatchSize and issues one
// multi-row INSERT ... ON CONFLICT DO UPDATE per chunk. A failed chunk
// is logged and skipped; remaining chunks still run. Returns the number
// of rows in chunks that succeeded.
func (s UpsertSpec) Apply(ctx context.Context, db execer, rows [][]any) int {
	if len(rows) == 0 {
		return 0
	}

	applied := 0
	for start := 0; start < len(rows); start += s.BatchSize {
		end := start + s.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		sql, args := s.buildStatement(chunk)
		if _, err := db.Exec(ctx, sql, args...); err != nil {
			log.Error().Err(err).
				Str("table", s.Table).
				Int("chunk_start", start).
				Int("chunk_size", len(chunk)).
				Msg("Failed to upsert chunk")
			metrics.UpsertChunksTotal.WithLabelValues(s.Table, "failed").Inc()
			continue
		}

		applied += len(chunk)
		metrics.UpsertChunksTotal.WithLabelValues(s.Table, "success").Inc()
		metrics.RowsUpsertedTotal.WithLabelValues(s.Table).Add(float64(len(chunk)))
	}

	return applied
}

func (s UpsertSpec) buildStatement(chunk [][]any) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(s.Table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(s.Columns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(chunk)*len(s.Columns))
	placeholder := 1
	for i, row := range chunk {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := range s.Columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", placeholder)
			placeholder++
			args = append(args, row[j])
		}
		sb.WriteString(")")
	}

	sb.WriteString(" ON CONFLICT (")
	sb.WriteString(strings.Join(s.ConflictKey, ", "))
	sb.WriteString(") DO UPDATE SET ")

	first := true
	for _, col := range s.Columns {
		if s.isKeyColumn(col) {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(col)
		sb.WriteString(" = EXCLUDED.")
		sb.WriteString(col)
	}

	return sb.String(), args
}

func (s UpsertSpec) isKeyColumn(col string) bool {
	for _, k := range s.ConflictKey {
		if k == col {
			return true
		}
	}
	return false
}
