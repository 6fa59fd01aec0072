package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"wpsync/internal/domain"
	"wpsync/internal/source/wordpress"
)

// Client is the remote API surface the reconciler consumes.
type Client interface {
	FetchPostsPage(ctx context.Context, siteID int64, filter wordpress.PostFilter, cursor string) (*wordpress.PostsPage, error)
	FetchPost(ctx context.Context, siteID, postID int64) (*wordpress.Post, error)
	FetchCategoriesPage(ctx context.Context, siteID int64, page int) ([]wordpress.Category, error)
	FetchTagsPage(ctx context.Context, siteID int64, page int) ([]wordpress.Tag, error)
	FetchAuthorsPage(ctx context.Context, siteID int64, offset int) ([]wordpress.Author, error)
	FetchMediaPage(ctx context.Context, siteID int64, page int, after *time.Time) ([]wordpress.Media, error)
}

type ContentStore interface {
	Upsert(ctx context.Context, item *domain.ContentItem, force bool) (int64, error)
	ReplaceLinks(ctx context.Context, contentID int64, tagIDs, categoryIDs, attachmentIDs []int64) error
	ExistingModified(ctx context.Context, siteID int64, remoteIDs []int64) (map[int64]time.Time, error)
	GetByRemoteID(ctx context.Context, siteID, remoteID int64) (*domain.ContentItem, error)
	Purge(ctx context.Context, siteID int64, contentType *domain.ContentType) (int64, error)
}

type RefDataStore interface {
	UpsertAuthors(ctx context.Context, authors []*domain.Author) (map[int64]int64, error)
	UpsertTags(ctx context.Context, tags []*domain.Tag) (map[int64]int64, error)
	UpsertCategories(ctx context.Context, categories []*domain.Category) (map[int64]int64, error)
	UpsertMedia(ctx context.Context, media []*domain.Media) (map[int64]int64, error)
	IDMap(ctx context.Context, siteID int64, kind domain.RefType) (map[int64]int64, error)
	Purge(ctx context.Context, siteID int64) (int64, error)
}

type SyncStateStore interface {
	Get(ctx context.Context, siteID int64, contentType string) (*domain.SyncState, error)
	Advance(ctx context.Context, state *domain.SyncState) error
	Reset(ctx context.Context, siteID int64) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, item *domain.ContentItem, isNew bool) error
	Close() error
}
