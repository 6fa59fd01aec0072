package service

import (
	"context"
	"errors"
	"fmt"

	"wpsync/internal/domain"
	"wpsync/internal/mapper"
	"wpsync/internal/source/wordpress"
)

// RefreshResult says what a single-item refresh did.
type RefreshResult struct {
	Item    *domain.ContentItem
	Created bool
	// Missing is set when the remote no longer serves the item. The local
	// row, if any, is left in place: a 404 can mean deleted, unpublished or
	// a permission change, and none of those justify destroying local data.
	Missing bool
}

// RefreshPost fetches one post by remote ID and writes it through,
// bypassing the modified-time skip so a repeated push always lands.
func (r *Reconciler) RefreshPost(ctx context.Context, remoteID int64) (*RefreshResult, error) {
	logger := r.logger.With("wp_id", remoteID)

	raw, err := r.client.FetchPost(ctx, r.siteID, remoteID)
	if err != nil {
		if errors.Is(err, wordpress.ErrNotFound) {
			logger.Info("remote item not found, keeping local copy")
			return &RefreshResult{Missing: true}, nil
		}
		return nil, fmt.Errorf("fetch post %d: %w", remoteID, err)
	}

	// The single-post payload embeds everything the item references, so an
	// empty map plus the embedded-ref pass is enough to resolve it.
	refMap := mapper.NewRefMap()
	if err := r.ensureEmbeddedRefs(ctx, []wordpress.Post{*raw}, refMap); err != nil {
		return nil, fmt.Errorf("upsert embedded references: %w", err)
	}

	item, err := mapper.MapPost(r.siteID, raw, refMap)
	if err != nil {
		return nil, fmt.Errorf("map post %d: %w", remoteID, err)
	}

	stored, err := r.content.GetByRemoteID(ctx, r.siteID, remoteID)
	if err != nil {
		return nil, fmt.Errorf("look up post %d: %w", remoteID, err)
	}

	if err := r.persistItem(ctx, item, true); err != nil {
		return nil, fmt.Errorf("persist post %d: %w", remoteID, err)
	}

	created := stored == nil
	r.publish(ctx, item, created)

	logger.Info("refreshed item", "type", item.Type, "status", item.Status, "created", created)

	return &RefreshResult{Item: item, Created: created}, nil
}
