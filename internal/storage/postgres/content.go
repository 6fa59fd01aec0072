package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"wpsync/internal/domain"
)

type ContentStore struct {
	db *sqlx.DB
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db}
}

// Upsert inserts or updates a content item by its (site_id, wp_id) natural
// key and returns the local surrogate key. Updates only apply when the
// incoming modified time is not older than the stored one, unless force is
// set (full runs overwrite unconditionally).
func (s *ContentStore) Upsert(ctx context.Context, item *domain.ContentItem, force bool) (int64, error) {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO content_items (
			site_id, wp_id, post_type, status, author_id, post_date, modified,
			title, url, short_url, content, excerpt, slug, guid, sticky,
			parent_wp_id, featured_image, format, menu_order, like_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		ON CONFLICT (site_id, wp_id) DO UPDATE SET
			post_type = EXCLUDED.post_type,
			status = EXCLUDED.status,
			author_id = EXCLUDED.author_id,
			post_date = EXCLUDED.post_date,
			modified = EXCLUDED.modified,
			title = EXCLUDED.title,
			url = EXCLUDED.url,
			short_url = EXCLUDED.short_url,
			content = EXCLUDED.content,
			excerpt = EXCLUDED.excerpt,
			slug = EXCLUDED.slug,
			guid = EXCLUDED.guid,
			sticky = EXCLUDED.sticky,
			parent_wp_id = EXCLUDED.parent_wp_id,
			featured_image = EXCLUDED.featured_image,
			format = EXCLUDED.format,
			menu_order = EXCLUDED.menu_order,
			like_count = EXCLUDED.like_count,
			updated_at = now()
		WHERE content_items.modified <= EXCLUDED.modified OR $21
		RETURNING id`

	var id int64
	err := ex.QueryRowxContext(ctx, query,
		item.SiteID,
		item.RemoteID,
		item.Type,
		item.Status,
		item.AuthorID,
		item.PostDate,
		item.Modified,
		item.Title,
		item.URL,
		item.ShortURL,
		item.Content,
		item.Excerpt,
		item.Slug,
		item.GUID,
		item.Sticky,
		item.ParentID,
		item.FeaturedImage,
		item.Format,
		item.MenuOrder,
		item.LikeCount,
		force,
	).Scan(&id)

	if err == sql.ErrNoRows {
		// The guard rejected a stale update; the row still exists.
		err = ex.QueryRowxContext(ctx,
			"SELECT id FROM content_items WHERE site_id = $1 AND wp_id = $2",
			item.SiteID, item.RemoteID,
		).Scan(&id)
	}

	if err != nil {
		return 0, err
	}

	return id, nil
}

// ReplaceLinks replaces the item's tag, category and attachment link rows
// with the given sets.
func (s *ContentStore) ReplaceLinks(ctx context.Context, contentID int64, tagIDs, categoryIDs, attachmentIDs []int64) error {
	if err := s.replaceLinkSet(ctx, "content_tags", "tag_id", contentID, tagIDs); err != nil {
		return err
	}
	if err := s.replaceLinkSet(ctx, "content_categories", "category_id", contentID, categoryIDs); err != nil {
		return err
	}
	return s.replaceLinkSet(ctx, "content_attachments", "media_id", contentID, attachmentIDs)
}

func (s *ContentStore) replaceLinkSet(ctx context.Context, table, column string, contentID int64, ids []int64) error {
	ex := GetExecutor(ctx, s.db)

	_, err := ex.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE content_id = $1",
		contentID,
	)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO " + table + " (content_id, " + column + ") VALUES ")
	valueArgs := make([]interface{}, 0, len(ids)+1)
	valueArgs = append(valueArgs, contentID)

	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($1, $")
		sb.WriteString(strconv.Itoa(i + 2))
		sb.WriteString(")")
		valueArgs = append(valueArgs, id)
	}
	sb.WriteString(" ON CONFLICT DO NOTHING")

	_, err = ex.ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

// ExistingModified returns the stored modified time for each of the given
// remote IDs that already has a local row.
func (s *ContentStore) ExistingModified(ctx context.Context, siteID int64, remoteIDs []int64) (map[int64]time.Time, error) {
	if len(remoteIDs) == 0 {
		return make(map[int64]time.Time), nil
	}

	ex := GetExecutor(ctx, s.db)

	query := `SELECT wp_id, modified FROM content_items WHERE site_id = $1 AND wp_id = ANY($2)`

	rows, err := ex.QueryContext(ctx, query, siteID, pq.Array(remoteIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]time.Time)
	for rows.Next() {
		var remoteID int64
		var modified time.Time
		if err := rows.Scan(&remoteID, &modified); err != nil {
			return nil, err
		}
		result[remoteID] = modified
	}

	return result, rows.Err()
}

// GetByRemoteID loads one content item by its natural key, without link sets.
// Returns nil when no row exists.
func (s *ContentStore) GetByRemoteID(ctx context.Context, siteID, remoteID int64) (*domain.ContentItem, error) {
	ex := GetExecutor(ctx, s.db)

	query := `
		SELECT id, site_id, wp_id, post_type, status, author_id, post_date,
		       modified, title, url, short_url, content, excerpt, slug, guid,
		       sticky, parent_wp_id, featured_image, format, menu_order,
		       like_count, created_at, updated_at
		FROM content_items
		WHERE site_id = $1 AND wp_id = $2`

	var item domain.ContentItem
	err := ex.QueryRowxContext(ctx, query, siteID, remoteID).Scan(
		&item.ID, &item.SiteID, &item.RemoteID, &item.Type, &item.Status,
		&item.AuthorID, &item.PostDate, &item.Modified, &item.Title,
		&item.URL, &item.ShortURL, &item.Content, &item.Excerpt, &item.Slug,
		&item.GUID, &item.Sticky, &item.ParentID, &item.FeaturedImage,
		&item.Format, &item.MenuOrder, &item.LikeCount,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Purge deletes all content rows for the site, optionally restricted to one
// content type, and returns the number of rows removed. Link rows cascade.
func (s *ContentStore) Purge(ctx context.Context, siteID int64, contentType *domain.ContentType) (int64, error) {
	ex := GetExecutor(ctx, s.db)

	var res sql.Result
	var err error
	if contentType != nil {
		res, err = ex.ExecContext(ctx,
			"DELETE FROM content_items WHERE site_id = $1 AND post_type = $2",
			siteID, *contentType,
		)
	} else {
		res, err = ex.ExecContext(ctx,
			"DELETE FROM content_items WHERE site_id = $1",
			siteID,
		)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
