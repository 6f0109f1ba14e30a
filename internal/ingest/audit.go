package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/becastil/costdash/internal/fees"
	embedsql "github.com/becastil/costdash/internal/sql"
)

// ErrAuditNotFound is returned by GetAudit for an unknown audit id.
var ErrAuditNotFound = errors.New("audit entry not found")

// RecordAudit stores a bulk-apply audit entry as JSONB. Recording the same
// entry twice is a no-op.
func RecordAudit(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, entry fees.AuditEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}

	tag, err := pool.Exec(ctx, embedsql.InsertAudit,
		entry.ID,
		entry.AppliedAt,
		entry.StartMonth,
		entry.EndMonth,
		string(entry.ConflictPolicy),
		string(entry.MissingMonthStrategy),
		len(entry.MonthsUpdated),
		body,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	log.Info().
		Str("audit_id", entry.ID).
		Int("months_updated", len(entry.MonthsUpdated)).
		Bool("inserted", tag.RowsAffected() == 1).
		Msg("bulk apply audit recorded")
	return nil
}

// GetAudit loads an audit entry stored by RecordAudit.
func GetAudit(ctx context.Context, pool *pgxpool.Pool, id string) (fees.AuditEntry, error) {
	var body []byte
	if err := pool.QueryRow(ctx, embedsql.GetAudit, id).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fees.AuditEntry{}, fmt.Errorf("%w: %s", ErrAuditNotFound, id)
		}
		return fees.AuditEntry{}, fmt.Errorf("get audit entry: %w", err)
	}

	var entry fees.AuditEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return fees.AuditEntry{}, fmt.Errorf("decode audit entry %s: %w", id, err)
	}
	return entry, nil
}
