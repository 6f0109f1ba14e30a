package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/becastil/costdash/internal/sql"
)

// Finalize records the staged counts and marks the upload loaded.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, uploadID uuid.UUID, st *StageResult) (time.Duration, error) {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.FinalizeUpload,
		uploadID, st.BudgetRows, st.ClaimsRows, st.Issues,
	)
	if err != nil {
		return 0, fmt.Errorf("finalize upload: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return 0, fmt.Errorf("finalize upload: upload %s not registered", uploadID)
	}

	log.Info().
		Str("upload_id", uploadID.String()).
		Str("status", StatusLoaded).
		Msg("upload finalized")

	return time.Since(start), nil
}
