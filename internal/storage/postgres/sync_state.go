package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"wpsync/internal/domain"
)

type SyncStateStore struct {
	db *sqlx.DB
}

func NewSyncStateStore(db *sqlx.DB) *SyncStateStore {
	return &SyncStateStore{db: db}
}

// Get returns the watermark for one (site, content type) pair. A pair that
// has never synced gets a zero state, not an error.
func (s *SyncStateStore) Get(ctx context.Context, siteID int64, contentType string) (*domain.SyncState, error) {
	ex := GetExecutor(ctx, s.db)

	var state domain.SyncState
	query := `
		SELECT id, site_id, content_type, last_synced_at, total_synced
		FROM sync_state
		WHERE site_id = $1 AND content_type = $2`

	err := sqlx.GetContext(ctx, ex, &state, query, siteID, contentType)
	if err == sql.ErrNoRows {
		return &domain.SyncState{
			SiteID:      siteID,
			ContentType: contentType,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Advance persists the watermark. The GREATEST guard keeps the timestamp
// monotonic even if two runs race.
func (s *SyncStateStore) Advance(ctx context.Context, state *domain.SyncState) error {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO sync_state (site_id, content_type, last_synced_at, total_synced)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (site_id, content_type) DO UPDATE SET
			last_synced_at = GREATEST(sync_state.last_synced_at, EXCLUDED.last_synced_at),
			total_synced = EXCLUDED.total_synced`

	_, err := ex.ExecContext(ctx, query,
		state.SiteID,
		state.ContentType,
		state.LastSyncedAt,
		state.TotalSynced,
	)
	return err
}

// Reset clears all watermarks for the site. Used by the purge pre-pass so a
// purged site starts from the beginning of time.
func (s *SyncStateStore) Reset(ctx context.Context, siteID int64) error {
	ex := GetExecutor(ctx, s.db)
	_, err := ex.ExecContext(ctx, "DELETE FROM sync_state WHERE site_id = $1", siteID)
	return err
}
