package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/becastil/costdash/internal/sql"
)

// Cleanup deletes the budget rows, claims rows and issues staged for an upload.
// The upload registration itself is kept.
func Cleanup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, uploadID uuid.UUID) error {
	start := time.Now()

	var budget, claims, issues int64
	if err := pool.QueryRow(ctx, embedsql.DeleteUploadRows, uploadID).Scan(&budget, &claims, &issues); err != nil {
		return err
	}

	log.Info().
		Str("upload_id", uploadID.String()).
		Int64("budget_rows_deleted", budget).
		Int64("claims_rows_deleted", claims).
		Int64("issues_deleted", issues).
		Dur("duration", time.Since(start)).
		Msg("upload cleanup complete")

	return nil
}
