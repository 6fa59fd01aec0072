package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wpsync/internal/config"
	"wpsync/internal/domain"
	"wpsync/internal/mapper"
	"wpsync/internal/source/wordpress"
)

// Reconciler drives one site's sync: batch runs over the paginated remote
// collections and single-item refreshes. Reference data always commits
// before the content that depends on it; the per-type watermarks advance to
// the run start time only after the whole requested scope succeeded.
type Reconciler struct {
	siteID    int64
	client    Client
	content   ContentStore
	refs      RefDataStore
	syncState SyncStateStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
	config    config.SyncConfig

	// now is swapped out in tests to pin the run start time.
	now func() time.Time
}

func NewReconciler(
	siteID int64,
	client Client,
	content ContentStore,
	refs RefDataStore,
	syncState SyncStateStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *Reconciler {
	return &Reconciler{
		siteID:    siteID,
		client:    client,
		content:   content,
		refs:      refs,
		syncState: syncState,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("site_id", siteID),
		config:    cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one batch sync in the requested mode and reports per-type
// counts. The returned error covers invalid options and the purge pre-pass
// only; fetch and commit failures of individual types are carried in the
// report so partial success stays visible.
func (r *Reconciler) Run(ctx context.Context, opts domain.RunOptions) (*domain.RunReport, error) {
	if opts.Type == "" {
		opts.Type = domain.FilterAll
	}
	if opts.Status == "" {
		opts.Status = domain.StatusPublish
	}
	if !opts.Type.Valid() {
		return nil, fmt.Errorf("invalid type filter %q", opts.Type)
	}
	if !opts.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", opts.Status)
	}
	if opts.Purge && !opts.Full {
		return nil, fmt.Errorf("purge requires a full run")
	}

	// The run start time, not the last record's time, becomes the new
	// watermark: records modified while the run is in flight land inside
	// the next window instead of being skipped forever.
	runStart := r.now()
	report := domain.NewRunReport(r.siteID, runStart)

	r.logger.Info("starting sync run",
		"type", opts.Type,
		"status", opts.Status,
		"full", opts.Full,
		"purge", opts.Purge,
	)

	if opts.Purge {
		if err := r.purge(ctx); err != nil {
			return report, fmt.Errorf("purge site %d: %w", r.siteID, err)
		}
	}

	if opts.Type.IncludesRefData() {
		r.loadRefData(ctx, opts, report)
	}

	contentTypes := opts.Type.ContentTypes()
	if len(contentTypes) > 0 {
		refMap, err := r.loadRefMap(ctx)
		if err != nil {
			return report, fmt.Errorf("load reference map: %w", err)
		}
		for _, ct := range contentTypes {
			r.loadContent(ctx, ct, opts, refMap, report)
		}
	}

	r.commitWatermarks(ctx, opts, runStart, contentTypes, report)

	report.Duration = time.Since(runStart)
	r.logRunResult(report)

	return report, nil
}

// purge removes every local row for the site before a full reload.
func (r *Reconciler) purge(ctx context.Context) error {
	return r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		contentDeleted, err := r.content.Purge(txCtx, r.siteID, nil)
		if err != nil {
			return err
		}
		refDeleted, err := r.refs.Purge(txCtx, r.siteID)
		if err != nil {
			return err
		}
		if err := r.syncState.Reset(txCtx, r.siteID); err != nil {
			return err
		}
		r.logger.Warn("purged local content",
			"content_rows", contentDeleted,
			"ref_rows", refDeleted,
		)
		return nil
	})
}

// loadRefData loads all four reference collections, each fully paged, each
// page committed before the next fetch. A failed kind is recorded and the
// remaining kinds still load.
func (r *Reconciler) loadRefData(ctx context.Context, opts domain.RunOptions, report *domain.RunReport) {
	loaders := map[domain.RefType]func(context.Context, domain.RunOptions, *domain.TypeStats) error{
		domain.RefCategory: r.loadCategories,
		domain.RefTag:      r.loadTags,
		domain.RefAuthor:   r.loadAuthors,
		domain.RefMedia:    r.loadMedia,
	}

	for _, kind := range domain.RefTypes {
		stats := &domain.TypeStats{}
		report.RefData[kind] = stats

		r.logger.Info("loading reference data", "kind", kind)
		if err := loaders[kind](ctx, opts, stats); err != nil {
			stats.Err = err
			if errors.Is(err, wordpress.ErrAuthRequired) {
				r.logger.Error("authentication required", "kind", kind)
			} else {
				r.logger.Error("reference data load failed", "kind", kind, "error", err)
			}
		}
	}
}

func (r *Reconciler) loadCategories(ctx context.Context, _ domain.RunOptions, stats *domain.TypeStats) error {
	for page := 1; page <= r.config.MaxPages.Categories; page++ {
		raw, err := r.client.FetchCategoriesPage(ctx, r.siteID, page)
		if err != nil {
			return fmt.Errorf("fetch categories page %d: %w", page, err)
		}
		if len(raw) == 0 {
			return nil
		}
		stats.Pages++

		categories := make([]*domain.Category, 0, len(raw))
		for i := range raw {
			categories = append(categories, mapper.MapCategory(r.siteID, &raw[i]))
		}

		err = r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			_, err := r.refs.UpsertCategories(txCtx, categories)
			return err
		})
		if err != nil {
			return fmt.Errorf("upsert categories page %d: %w", page, err)
		}
		stats.Created += len(categories)
	}
	return nil
}

func (r *Reconciler) loadTags(ctx context.Context, _ domain.RunOptions, stats *domain.TypeStats) error {
	for page := 1; page <= r.config.MaxPages.Tags; page++ {
		raw, err := r.client.FetchTagsPage(ctx, r.siteID, page)
		if err != nil {
			return fmt.Errorf("fetch tags page %d: %w", page, err)
		}
		if len(raw) == 0 {
			return nil
		}
		stats.Pages++

		tags := make([]*domain.Tag, 0, len(raw))
		for i := range raw {
			tags = append(tags, mapper.MapTag(r.siteID, &raw[i]))
		}

		err = r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			_, err := r.refs.UpsertTags(txCtx, tags)
			return err
		})
		if err != nil {
			return fmt.Errorf("upsert tags page %d: %w", page, err)
		}
		stats.Created += len(tags)
	}
	return nil
}

func (r *Reconciler) loadAuthors(ctx context.Context, _ domain.RunOptions, stats *domain.TypeStats) error {
	// The users endpoint pages by row offset, not page number.
	offset := 0
	for page := 1; page <= r.config.MaxPages.Authors; page++ {
		raw, err := r.client.FetchAuthorsPage(ctx, r.siteID, offset)
		if err != nil {
			return fmt.Errorf("fetch authors offset %d: %w", offset, err)
		}
		if len(raw) == 0 {
			return nil
		}
		stats.Pages++
		offset += len(raw)

		authors := make([]*domain.Author, 0, len(raw))
		for i := range raw {
			authors = append(authors, mapper.MapAuthor(r.siteID, &raw[i]))
		}

		err = r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			_, err := r.refs.UpsertAuthors(txCtx, authors)
			return err
		})
		if err != nil {
			return fmt.Errorf("upsert authors offset %d: %w", offset, err)
		}
		stats.Created += len(authors)
	}
	return nil
}

func (r *Reconciler) loadMedia(ctx context.Context, opts domain.RunOptions, stats *domain.TypeStats) error {
	after := r.mediaAfter(opts)

	for page := 1; page <= r.config.MaxPages.Media; page++ {
		raw, err := r.client.FetchMediaPage(ctx, r.siteID, page, after)
		if err != nil {
			return fmt.Errorf("fetch media page %d: %w", page, err)
		}
		if len(raw) == 0 {
			return nil
		}
		stats.Pages++

		media := make([]*domain.Media, 0, len(raw))
		for i := range raw {
			// Unattached library entries are not referenced by content.
			if raw[i].PostID == 0 {
				stats.Skipped++
				continue
			}
			m, err := mapper.MapMedia(r.siteID, &raw[i])
			if err != nil {
				stats.Failed++
				r.logger.Warn("skipping unmappable media", "wp_id", raw[i].ID, "error", err)
				continue
			}
			media = append(media, m)
		}
		if len(media) == 0 {
			continue
		}

		err = r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			_, err := r.refs.UpsertMedia(txCtx, media)
			return err
		})
		if err != nil {
			return fmt.Errorf("upsert media page %d: %w", page, err)
		}
		stats.Created += len(media)
	}
	return nil
}

// mediaAfter widens the media fetch window. The media endpoint filters on
// upload date, not modification date, so incremental runs look behind the
// lower bound far enough to catch recently modified files.
func (r *Reconciler) mediaAfter(opts domain.RunOptions) *time.Time {
	if opts.Full {
		return nil
	}
	base := r.now()
	if opts.ModifiedAfter != nil {
		base = *opts.ModifiedAfter
	}
	after := base.Add(-r.config.MediaLookbehind)
	return &after
}

// loadRefMap pulls every stored reference row's ID mapping into memory for
// fast foreign key resolution while processing posts.
func (r *Reconciler) loadRefMap(ctx context.Context) (*mapper.RefMap, error) {
	refMap := mapper.NewRefMap()

	kinds := map[domain.RefType]*map[int64]int64{
		domain.RefAuthor:   &refMap.Authors,
		domain.RefTag:      &refMap.Tags,
		domain.RefCategory: &refMap.Categories,
		domain.RefMedia:    &refMap.Media,
	}
	for kind, dst := range kinds {
		ids, err := r.refs.IDMap(ctx, r.siteID, kind)
		if err != nil {
			return nil, fmt.Errorf("load %s ids: %w", kind, err)
		}
		*dst = ids
	}
	return refMap, nil
}

// loadContent syncs one content type page by page.
func (r *Reconciler) loadContent(ctx context.Context, ct domain.ContentType, opts domain.RunOptions, refMap *mapper.RefMap, report *domain.RunReport) {
	stats := &domain.TypeStats{}
	report.Content[ct] = stats

	bound, err := r.lowerBound(ctx, ct, opts)
	if err != nil {
		stats.Err = err
		return
	}

	filter := wordpress.PostFilter{
		Type:          ct,
		Status:        opts.Status,
		ModifiedAfter: bound,
	}

	logAttrs := []any{"type", ct, "status", opts.Status}
	if bound != nil {
		logAttrs = append(logAttrs, "modified_after", bound.Format(time.RFC3339))
	}
	r.logger.Info("loading content", logAttrs...)

	cursor := ""
	for page := 1; page <= r.config.MaxPages.Posts; page++ {
		pageResp, err := r.client.FetchPostsPage(ctx, r.siteID, filter, cursor)
		if err != nil {
			stats.Err = fmt.Errorf("fetch %s page %d: %w", ct, page, err)
			if errors.Is(err, wordpress.ErrAuthRequired) {
				r.logger.Error("authentication required", "type", ct, "status", opts.Status)
			} else {
				r.logger.Error("content fetch failed", "type", ct, "page", page, "error", err)
			}
			return
		}
		if len(pageResp.Posts) == 0 {
			return
		}
		stats.Pages++

		if err := r.processPostPage(ctx, pageResp.Posts, refMap, opts.Full, stats); err != nil {
			stats.Err = fmt.Errorf("process %s page %d: %w", ct, page, err)
			return
		}

		if pageResp.NextCursor == "" {
			return
		}
		cursor = pageResp.NextCursor
	}
}

// lowerBound picks the fetch window's inclusive lower edge for one content
// type: an explicit date beats the stored watermark, and full runs have none.
func (r *Reconciler) lowerBound(ctx context.Context, ct domain.ContentType, opts domain.RunOptions) (*time.Time, error) {
	if opts.Full {
		return nil, nil
	}
	if opts.ModifiedAfter != nil {
		t := opts.ModifiedAfter.UTC()
		return &t, nil
	}
	state, err := r.syncState.Get(ctx, r.siteID, string(ct))
	if err != nil {
		return nil, fmt.Errorf("read watermark for %s: %w", ct, err)
	}
	if state.LastSyncedAt.IsZero() {
		return nil, nil
	}
	t := state.LastSyncedAt.UTC()
	return &t, nil
}

// processPostPage commits one page of posts: embedded reference rows first,
// then each mapped post with its link sets in its own transaction. Returned
// errors are storage-level and abort the type; per-post failures only bump
// the failed counter.
func (r *Reconciler) processPostPage(ctx context.Context, posts []wordpress.Post, refMap *mapper.RefMap, force bool, stats *domain.TypeStats) error {
	if err := r.ensureEmbeddedRefs(ctx, posts, refMap); err != nil {
		return fmt.Errorf("upsert embedded references: %w", err)
	}

	remoteIDs := make([]int64, len(posts))
	for i := range posts {
		remoteIDs[i] = posts[i].ID
	}
	existing, err := r.content.ExistingModified(ctx, r.siteID, remoteIDs)
	if err != nil {
		return fmt.Errorf("look up existing items: %w", err)
	}

	for i := range posts {
		raw := &posts[i]

		item, err := mapper.MapPost(r.siteID, raw, refMap)
		if err != nil {
			stats.Failed++
			r.logger.Error("mapping failed", "wp_id", raw.ID, "error", err)
			continue
		}

		storedModified, exists := existing[raw.ID]
		if exists && !force && !item.Modified.After(storedModified) {
			stats.Skipped++
			continue
		}

		if err := r.persistItem(ctx, item, force); err != nil {
			stats.Failed++
			r.logger.Error("persist failed", "wp_id", raw.ID, "error", err)
			continue
		}

		r.publish(ctx, item, !exists)

		if exists {
			stats.Updated++
		} else {
			stats.Created++
		}
	}

	return nil
}

// ensureEmbeddedRefs creates any reference rows a page of posts embeds that
// are not yet locally present, keeping the reference-before-content
// invariant intact even when the reference listings lag the post payloads.
func (r *Reconciler) ensureEmbeddedRefs(ctx context.Context, posts []wordpress.Post, refMap *mapper.RefMap) error {
	var (
		authors    []*domain.Author
		tags       []*domain.Tag
		categories []*domain.Category
		media      []*domain.Media
	)
	seenAuthors := make(map[int64]bool)
	seenTags := make(map[int64]bool)
	seenCategories := make(map[int64]bool)
	seenMedia := make(map[int64]bool)

	for i := range posts {
		p := &posts[i]

		if p.Author.ID != 0 {
			if _, ok := refMap.Authors[p.Author.ID]; !ok && !seenAuthors[p.Author.ID] {
				seenAuthors[p.Author.ID] = true
				authors = append(authors, mapper.MapAuthor(r.siteID, &p.Author))
			}
		}
		for _, t := range p.Tags {
			if _, ok := refMap.Tags[t.ID]; !ok && !seenTags[t.ID] {
				seenTags[t.ID] = true
				tag := t
				tags = append(tags, mapper.MapTag(r.siteID, &tag))
			}
		}
		for _, c := range p.Categories {
			if _, ok := refMap.Categories[c.ID]; !ok && !seenCategories[c.ID] {
				seenCategories[c.ID] = true
				cat := c
				categories = append(categories, mapper.MapCategory(r.siteID, &cat))
			}
		}
		for _, m := range p.Attachments {
			if _, ok := refMap.Media[m.ID]; !ok && !seenMedia[m.ID] {
				att := m
				mapped, err := mapper.MapMedia(r.siteID, &att)
				if err != nil {
					r.logger.Warn("skipping unmappable embedded media", "wp_id", m.ID, "error", err)
					continue
				}
				seenMedia[m.ID] = true
				media = append(media, mapped)
			}
		}
	}

	if len(authors)+len(tags)+len(categories)+len(media) == 0 {
		return nil
	}

	return r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if len(authors) > 0 {
			ids, err := r.refs.UpsertAuthors(txCtx, authors)
			if err != nil {
				return err
			}
			mergeIDs(refMap.Authors, ids)
		}
		if len(tags) > 0 {
			ids, err := r.refs.UpsertTags(txCtx, tags)
			if err != nil {
				return err
			}
			mergeIDs(refMap.Tags, ids)
		}
		if len(categories) > 0 {
			ids, err := r.refs.UpsertCategories(txCtx, categories)
			if err != nil {
				return err
			}
			mergeIDs(refMap.Categories, ids)
		}
		if len(media) > 0 {
			ids, err := r.refs.UpsertMedia(txCtx, media)
			if err != nil {
				return err
			}
			mergeIDs(refMap.Media, ids)
		}
		return nil
	})
}

// persistItem writes one content item and its link sets atomically.
func (r *Reconciler) persistItem(ctx context.Context, item *domain.ContentItem, force bool) error {
	return r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		id, err := r.content.Upsert(txCtx, item, force)
		if err != nil {
			return fmt.Errorf("upsert content: %w", err)
		}
		item.ID = id

		if err := r.content.ReplaceLinks(txCtx, id, item.TagIDs, item.CategoryIDs, item.AttachmentIDs); err != nil {
			return fmt.Errorf("replace links: %w", err)
		}
		return nil
	})
}

// publish emits a change event; publishing is best effort and never fails a
// run.
func (r *Reconciler) publish(ctx context.Context, item *domain.ContentItem, isNew bool) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, item, isNew); err != nil {
		r.logger.Warn("publish failed", "wp_id", item.RemoteID, "error", err)
	}
}

// commitWatermarks advances the per-type watermarks to the run start time,
// only when the whole requested scope succeeded. Runs restricted to a single
// non-public status are operator backfills and leave the watermarks alone.
func (r *Reconciler) commitWatermarks(ctx context.Context, opts domain.RunOptions, runStart time.Time, contentTypes []domain.ContentType, report *domain.RunReport) {
	if len(contentTypes) == 0 {
		return
	}
	if report.Failed() {
		r.logger.Warn("run had failures, watermark not advanced")
		return
	}
	if opts.Status != domain.StatusPublish && opts.Status != domain.StatusAny {
		r.logger.Info("status-restricted run, watermark not advanced", "status", opts.Status)
		return
	}

	for _, ct := range contentTypes {
		stats := report.Content[ct]
		state, err := r.syncState.Get(ctx, r.siteID, string(ct))
		if err != nil {
			r.logger.Error("watermark read failed", "type", ct, "error", err)
			continue
		}
		state.LastSyncedAt = runStart
		state.TotalSynced += int64(stats.Created + stats.Updated)
		if err := r.syncState.Advance(ctx, state); err != nil {
			r.logger.Error("watermark advance failed", "type", ct, "error", err)
		}
	}
}

func (r *Reconciler) logRunResult(report *domain.RunReport) {
	for kind, stats := range report.RefData {
		r.logger.Info("ref data result",
			"kind", kind,
			"created", stats.Created,
			"skipped", stats.Skipped,
			"failed", stats.Failed,
			"pages", stats.Pages,
			"error", stats.Err,
		)
	}
	for ct, stats := range report.Content {
		r.logger.Info("content result",
			"type", ct,
			"created", stats.Created,
			"updated", stats.Updated,
			"skipped", stats.Skipped,
			"failed", stats.Failed,
			"pages", stats.Pages,
			"error", stats.Err,
		)
	}
	r.logger.Info("sync run finished", "failed", report.Failed(), "duration", report.Duration)
}

func mergeIDs(dst, src map[int64]int64) {
	for remoteID, localID := range src {
		dst[remoteID] = localID
	}
}
