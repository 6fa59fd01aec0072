//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"wpsync/internal/domain"
)

const testSiteID = int64(12345)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_ref_data.up.sql"),
			filepath.Join(migrationsPath, "002_create_content_items.up.sql"),
			filepath.Join(migrationsPath, "003_create_sync_state.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	for _, table := range []string{
		"content_tags", "content_categories", "content_attachments",
		"content_items", "authors", "tags", "categories", "media", "sync_state",
	} {
		_, _ = s.db.ExecContext(s.ctx, "DELETE FROM "+table)
	}
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) newItem(remoteID int64, modified time.Time) *domain.ContentItem {
	return &domain.ContentItem{
		SiteID:   testSiteID,
		RemoteID: remoteID,
		Type:     domain.TypePost,
		Status:   domain.StatusPublish,
		PostDate: modified.Add(-24 * time.Hour),
		Modified: modified,
		Title:    "Hello",
		Slug:     "hello",
	}
}

func (s *PostgresIntegrationSuite) TestContentStore_Upsert_Insert() {
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	id, err := store.Upsert(s.ctx, s.newItem(101, now), false)
	s.NoError(err)
	s.Greater(id, int64(0))

	var count int
	err = s.db.GetContext(s.ctx, &count,
		"SELECT COUNT(*) FROM content_items WHERE site_id = $1 AND wp_id = $2",
		testSiteID, 101)
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestContentStore_Upsert_UpdateWhenNewer() {
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	original := s.newItem(101, now.Add(-time.Hour))
	original.Title = "Original"
	id1, err := store.Upsert(s.ctx, original, false)
	s.Require().NoError(err)

	newer := s.newItem(101, now)
	newer.Title = "Updated"
	id2, err := store.Upsert(s.ctx, newer, false)
	s.NoError(err)
	s.Equal(id1, id2)

	var title string
	err = s.db.GetContext(s.ctx, &title,
		"SELECT title FROM content_items WHERE id = $1", id1)
	s.NoError(err)
	s.Equal("Updated", title)
}

func (s *PostgresIntegrationSuite) TestContentStore_Upsert_RejectsStaleUpdate() {
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	fresh := s.newItem(101, now)
	fresh.Title = "Fresh"
	id1, err := store.Upsert(s.ctx, fresh, false)
	s.Require().NoError(err)

	stale := s.newItem(101, now.Add(-time.Hour))
	stale.Title = "Stale"
	id2, err := store.Upsert(s.ctx, stale, false)
	s.NoError(err)
	s.Equal(id1, id2)

	var title string
	err = s.db.GetContext(s.ctx, &title,
		"SELECT title FROM content_items WHERE id = $1", id1)
	s.NoError(err)
	s.Equal("Fresh", title)
}

func (s *PostgresIntegrationSuite) TestContentStore_Upsert_ForceOverwritesStale() {
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	fresh := s.newItem(101, now)
	fresh.Title = "Fresh"
	_, err := store.Upsert(s.ctx, fresh, false)
	s.Require().NoError(err)

	stale := s.newItem(101, now.Add(-time.Hour))
	stale.Title = "Forced"
	id, err := store.Upsert(s.ctx, stale, true)
	s.NoError(err)

	var title string
	err = s.db.GetContext(s.ctx, &title,
		"SELECT title FROM content_items WHERE id = $1", id)
	s.NoError(err)
	s.Equal("Forced", title)
}

func (s *PostgresIntegrationSuite) TestContentStore_Upsert_Idempotent() {
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	id1, err := store.Upsert(s.ctx, s.newItem(101, now), false)
	s.Require().NoError(err)
	id2, err := store.Upsert(s.ctx, s.newItem(101, now), false)
	s.Require().NoError(err)
	s.Equal(id1, id2)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM content_items")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestContentStore_ReplaceLinks() {
	contentStore := NewContentStore(s.db)
	refStore := NewRefDataStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	tagIDs, err := refStore.UpsertTags(s.ctx, []*domain.Tag{
		{SiteID: testSiteID, RemoteID: 1, Name: "go", Slug: "go"},
		{SiteID: testSiteID, RemoteID: 2, Name: "news", Slug: "news"},
		{SiteID: testSiteID, RemoteID: 3, Name: "misc", Slug: "misc"},
	})
	s.Require().NoError(err)

	contentID, err := contentStore.Upsert(s.ctx, s.newItem(101, now), false)
	s.Require().NoError(err)

	err = contentStore.ReplaceLinks(s.ctx, contentID,
		[]int64{tagIDs[1], tagIDs[2]}, nil, nil)
	s.Require().NoError(err)

	// A later sync carries a different tag set; the old links must go away.
	err = contentStore.ReplaceLinks(s.ctx, contentID,
		[]int64{tagIDs[2], tagIDs[3]}, nil, nil)
	s.Require().NoError(err)

	var linked []int64
	err = s.db.SelectContext(s.ctx, &linked,
		"SELECT tag_id FROM content_tags WHERE content_id = $1 ORDER BY tag_id", contentID)
	s.NoError(err)
	s.Equal([]int64{tagIDs[2], tagIDs[3]}, linked)
}

func (s *PostgresIntegrationSuite) TestContentStore_ExistingModified() {
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := store.Upsert(s.ctx, s.newItem(101, now), false)
	s.Require().NoError(err)
	_, err = store.Upsert(s.ctx, s.newItem(102, now.Add(-time.Hour)), false)
	s.Require().NoError(err)

	existing, err := store.ExistingModified(s.ctx, testSiteID, []int64{101, 102, 999})
	s.NoError(err)
	s.Len(existing, 2)
	s.True(existing[101].Equal(now))
	s.True(existing[102].Equal(now.Add(-time.Hour)))
}

func (s *PostgresIntegrationSuite) TestContentStore_GetByRemoteID() {
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := store.Upsert(s.ctx, s.newItem(101, now), false)
	s.Require().NoError(err)

	item, err := store.GetByRemoteID(s.ctx, testSiteID, 101)
	s.NoError(err)
	s.Require().NotNil(item)
	s.Equal("Hello", item.Title)
	s.Equal(domain.TypePost, item.Type)

	missing, err := store.GetByRemoteID(s.ctx, testSiteID, 999)
	s.NoError(err)
	s.Nil(missing)
}

func (s *PostgresIntegrationSuite) TestContentStore_Purge() {
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := store.Upsert(s.ctx, s.newItem(101, now), false)
	s.Require().NoError(err)
	page := s.newItem(102, now)
	page.Type = domain.TypePage
	_, err = store.Upsert(s.ctx, page, false)
	s.Require().NoError(err)

	other := s.newItem(201, now)
	other.SiteID = testSiteID + 1
	_, err = store.Upsert(s.ctx, other, false)
	s.Require().NoError(err)

	postType := domain.TypePost
	deleted, err := store.Purge(s.ctx, testSiteID, &postType)
	s.NoError(err)
	s.Equal(int64(1), deleted)

	deleted, err = store.Purge(s.ctx, testSiteID, nil)
	s.NoError(err)
	s.Equal(int64(1), deleted)

	// The other site's rows are untouched.
	var count int
	err = s.db.GetContext(s.ctx, &count,
		"SELECT COUNT(*) FROM content_items WHERE site_id = $1", testSiteID+1)
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestRefDataStore_UpsertAndIDMap() {
	store := NewRefDataStore(s.db)

	ids, err := store.UpsertAuthors(s.ctx, []*domain.Author{
		{SiteID: testSiteID, RemoteID: 7, Login: "alice", Name: "Alice"},
	})
	s.Require().NoError(err)
	s.Len(ids, 1)

	// Upserting again keeps the same local ID and applies the new fields.
	again, err := store.UpsertAuthors(s.ctx, []*domain.Author{
		{SiteID: testSiteID, RemoteID: 7, Login: "alice", Name: "Alice Cooper"},
	})
	s.Require().NoError(err)
	s.Equal(ids[7], again[7])

	idMap, err := store.IDMap(s.ctx, testSiteID, domain.RefAuthor)
	s.NoError(err)
	s.Equal(ids[7], idMap[7])

	var name string
	err = s.db.GetContext(s.ctx, &name, "SELECT name FROM authors WHERE id = $1", ids[7])
	s.NoError(err)
	s.Equal("Alice Cooper", name)
}

func (s *PostgresIntegrationSuite) TestRefDataStore_Purge() {
	store := NewRefDataStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := store.UpsertAuthors(s.ctx, []*domain.Author{
		{SiteID: testSiteID, RemoteID: 7, Login: "alice"},
	})
	s.Require().NoError(err)
	_, err = store.UpsertTags(s.ctx, []*domain.Tag{
		{SiteID: testSiteID, RemoteID: 1, Name: "go"},
	})
	s.Require().NoError(err)
	_, err = store.UpsertMedia(s.ctx, []*domain.Media{
		{SiteID: testSiteID, RemoteID: 9, UploadedAt: now},
	})
	s.Require().NoError(err)

	deleted, err := store.Purge(s.ctx, testSiteID)
	s.NoError(err)
	s.Equal(int64(3), deleted)
}

func (s *PostgresIntegrationSuite) TestSyncStateStore_GetZeroState() {
	store := NewSyncStateStore(s.db)

	state, err := store.Get(s.ctx, testSiteID, "post")
	s.NoError(err)
	s.Require().NotNil(state)
	s.True(state.LastSyncedAt.IsZero())
	s.Equal(int64(0), state.TotalSynced)
}

func (s *PostgresIntegrationSuite) TestSyncStateStore_AdvanceMonotonic() {
	store := NewSyncStateStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	err := store.Advance(s.ctx, &domain.SyncState{
		SiteID: testSiteID, ContentType: "post", LastSyncedAt: now, TotalSynced: 10,
	})
	s.Require().NoError(err)

	// An older timestamp must not move the watermark backwards.
	err = store.Advance(s.ctx, &domain.SyncState{
		SiteID: testSiteID, ContentType: "post", LastSyncedAt: now.Add(-time.Hour), TotalSynced: 12,
	})
	s.Require().NoError(err)

	state, err := store.Get(s.ctx, testSiteID, "post")
	s.NoError(err)
	s.True(state.LastSyncedAt.Equal(now))
	s.Equal(int64(12), state.TotalSynced)
}

func (s *PostgresIntegrationSuite) TestSyncStateStore_PerTypeWatermarks() {
	store := NewSyncStateStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	err := store.Advance(s.ctx, &domain.SyncState{
		SiteID: testSiteID, ContentType: "post", LastSyncedAt: now,
	})
	s.Require().NoError(err)

	pageState, err := store.Get(s.ctx, testSiteID, "page")
	s.NoError(err)
	s.True(pageState.LastSyncedAt.IsZero())
}

func (s *PostgresIntegrationSuite) TestSyncStateStore_Reset() {
	store := NewSyncStateStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	for _, ct := range []string{"post", "page"} {
		err := store.Advance(s.ctx, &domain.SyncState{
			SiteID: testSiteID, ContentType: ct, LastSyncedAt: now,
		})
		s.Require().NoError(err)
	}

	err := store.Reset(s.ctx, testSiteID)
	s.NoError(err)

	state, err := store.Get(s.ctx, testSiteID, "post")
	s.NoError(err)
	s.True(state.LastSyncedAt.IsZero())
}

func (s *PostgresIntegrationSuite) TestTransactionManager_RollsBackOnError() {
	tm := NewTransactionManager(s.db)
	store := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	err := tm.WithTransaction(s.ctx, func(txCtx context.Context) error {
		if _, err := store.Upsert(txCtx, s.newItem(101, now), false); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Error(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM content_items")
	s.NoError(err)
	s.Equal(0, count)
}

func (s *PostgresIntegrationSuite) TestPurgeScenario_FullReload() {
	contentStore := NewContentStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Local has A, B, C; the remote now only has A and D. A purge plus full
	// reload converges exactly, without any row-level deletes during sync.
	for _, id := range []int64{1, 2, 3} {
		_, err := contentStore.Upsert(s.ctx, s.newItem(id, now), false)
		s.Require().NoError(err)
	}

	_, err := contentStore.Purge(s.ctx, testSiteID, nil)
	s.Require().NoError(err)

	for _, id := range []int64{1, 4} {
		_, err := contentStore.Upsert(s.ctx, s.newItem(id, now), true)
		s.Require().NoError(err)
	}

	var remaining []int64
	err = s.db.SelectContext(s.ctx, &remaining,
		"SELECT wp_id FROM content_items WHERE site_id = $1 ORDER BY wp_id", testSiteID)
	s.NoError(err)
	s.Equal([]int64{1, 4}, remaining)
}
