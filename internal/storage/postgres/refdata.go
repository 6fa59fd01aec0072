package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"wpsync/internal/domain"
)

// RefDataStore persists authors, tags, categories and media, the reference
// rows content items depend on. All writes are upserts keyed by the
// (site_id, wp_id) natural key.
type RefDataStore struct {
	db *sqlx.DB
}

func NewRefDataStore(db *sqlx.DB) *RefDataStore {
	return &RefDataStore{db: db}
}

// UpsertAuthors writes the given authors and returns remote ID to local ID.
func (s *RefDataStore) UpsertAuthors(ctx context.Context, authors []*domain.Author) (map[int64]int64, error) {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO authors (site_id, wp_id, login, email, name, nice_name, url, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (site_id, wp_id) DO UPDATE SET
			login = EXCLUDED.login,
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			nice_name = EXCLUDED.nice_name,
			url = EXCLUDED.url,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = now()
		RETURNING id`

	ids := make(map[int64]int64, len(authors))
	for _, a := range authors {
		var id int64
		err := ex.QueryRowxContext(ctx, query,
			a.SiteID, a.RemoteID, a.Login, a.Email, a.Name, a.NiceName, a.URL, a.AvatarURL,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[a.RemoteID] = id
	}
	return ids, nil
}

// UpsertTags writes the given tags and returns remote ID to local ID.
func (s *RefDataStore) UpsertTags(ctx context.Context, tags []*domain.Tag) (map[int64]int64, error) {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO tags (site_id, wp_id, name, slug, description, post_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (site_id, wp_id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			post_count = EXCLUDED.post_count,
			updated_at = now()
		RETURNING id`

	ids := make(map[int64]int64, len(tags))
	for _, t := range tags {
		var id int64
		err := ex.QueryRowxContext(ctx, query,
			t.SiteID, t.RemoteID, t.Name, t.Slug, t.Description, t.PostCount,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[t.RemoteID] = id
	}
	return ids, nil
}

// UpsertCategories writes the given categories and returns remote ID to local ID.
func (s *RefDataStore) UpsertCategories(ctx context.Context, categories []*domain.Category) (map[int64]int64, error) {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO categories (site_id, wp_id, name, slug, description, post_count, parent_wp_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (site_id, wp_id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			post_count = EXCLUDED.post_count,
			parent_wp_id = EXCLUDED.parent_wp_id,
			updated_at = now()
		RETURNING id`

	ids := make(map[int64]int64, len(categories))
	for _, c := range categories {
		var id int64
		err := ex.QueryRowxContext(ctx, query,
			c.SiteID, c.RemoteID, c.Name, c.Slug, c.Description, c.PostCount, c.ParentID,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[c.RemoteID] = id
	}
	return ids, nil
}

// UpsertMedia writes the given media entries and returns remote ID to local ID.
func (s *RefDataStore) UpsertMedia(ctx context.Context, media []*domain.Media) (map[int64]int64, error) {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO media (
			site_id, wp_id, url, guid, uploaded_at, post_wp_id, file_name,
			extension, mime_type, width, height, title, caption, description, alt
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (site_id, wp_id) DO UPDATE SET
			url = EXCLUDED.url,
			guid = EXCLUDED.guid,
			uploaded_at = EXCLUDED.uploaded_at,
			post_wp_id = EXCLUDED.post_wp_id,
			file_name = EXCLUDED.file_name,
			extension = EXCLUDED.extension,
			mime_type = EXCLUDED.mime_type,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			title = EXCLUDED.title,
			caption = EXCLUDED.caption,
			description = EXCLUDED.description,
			alt = EXCLUDED.alt,
			updated_at = now()
		RETURNING id`

	ids := make(map[int64]int64, len(media))
	for _, m := range media {
		var id int64
		err := ex.QueryRowxContext(ctx, query,
			m.SiteID, m.RemoteID, m.URL, m.GUID, m.UploadedAt, m.PostRemoteID,
			m.FileName, m.Extension, m.MimeType, m.Width, m.Height,
			m.Title, m.Caption, m.Description, m.Alt,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[m.RemoteID] = id
	}
	return ids, nil
}

// IDMap returns remote ID to local ID for every stored row of the given
// reference kind for the site.
func (s *RefDataStore) IDMap(ctx context.Context, siteID int64, kind domain.RefType) (map[int64]int64, error) {
	ex := GetExecutor(ctx, s.db)

	table, ok := refTables[kind]
	if !ok {
		return nil, &UnknownRefTypeError{Kind: kind}
	}

	rows, err := ex.QueryContext(ctx,
		"SELECT wp_id, id FROM "+table+" WHERE site_id = $1",
		siteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]int64)
	for rows.Next() {
		var remoteID, localID int64
		if err := rows.Scan(&remoteID, &localID); err != nil {
			return nil, err
		}
		result[remoteID] = localID
	}

	return result, rows.Err()
}

// Purge deletes all reference rows for the site across all four kinds and
// returns the number of rows removed. Content link rows cascade.
func (s *RefDataStore) Purge(ctx context.Context, siteID int64) (int64, error) {
	ex := GetExecutor(ctx, s.db)

	var total int64
	for _, kind := range domain.RefTypes {
		res, err := ex.ExecContext(ctx,
			"DELETE FROM "+refTables[kind]+" WHERE site_id = $1",
			siteID,
		)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

var refTables = map[domain.RefType]string{
	domain.RefAuthor:   "authors",
	domain.RefTag:      "tags",
	domain.RefCategory: "categories",
	domain.RefMedia:    "media",
}

// UnknownRefTypeError means a reference kind has no backing table.
type UnknownRefTypeError struct {
	Kind domain.RefType
}

func (e *UnknownRefTypeError) Error() string {
	return "unknown reference type: " + string(e.Kind)
}
