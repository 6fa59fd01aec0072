package domain

import "time"

// TypeFilter restricts a batch run to one content category.
type TypeFilter string

const (
	FilterAll        TypeFilter = "all"
	FilterRefData    TypeFilter = "ref_data"
	FilterPost       TypeFilter = "post"
	FilterPage       TypeFilter = "page"
	FilterAttachment TypeFilter = "attachment"
)

// Valid reports whether f is a known type filter.
func (f TypeFilter) Valid() bool {
	switch f {
	case FilterAll, FilterRefData, FilterPost, FilterPage, FilterAttachment:
		return true
	}
	return false
}

// ContentTypes returns the content types covered by the filter, in load order.
func (f TypeFilter) ContentTypes() []ContentType {
	switch f {
	case FilterAll:
		return ContentTypes
	case FilterPost:
		return []ContentType{TypePost}
	case FilterPage:
		return []ContentType{TypePage}
	case FilterAttachment:
		return []ContentType{TypeAttachment}
	}
	return nil
}

// IncludesRefData reports whether the filter loads reference data.
func (f TypeFilter) IncludesRefData() bool {
	return f == FilterAll || f == FilterRefData
}

// RunOptions selects the mode of one batch run.
type RunOptions struct {
	// Full ignores the stored watermark and forces unconditional upserts.
	Full bool
	// Purge deletes all local rows for the site before loading.
	// Only meaningful together with Full.
	Purge bool
	// ModifiedAfter overrides the stored watermark as the lower bound.
	ModifiedAfter *time.Time
	// Type restricts the run to one content category. Zero value means all.
	Type TypeFilter
	// Status restricts which remote statuses are fetched. Zero value means
	// publish. Non-public statuses require an auth token.
	Status Status
}

// SyncState is the persisted watermark for one (site, content type) pair.
// LastSyncedAt only moves forward, and only after a fully successful run.
type SyncState struct {
	ID           int64     `db:"id"`
	SiteID       int64     `db:"site_id"`
	ContentType  string    `db:"content_type"`
	LastSyncedAt time.Time `db:"last_synced_at"`
	TotalSynced  int64     `db:"total_synced"`
}

// TypeStats holds per-type counters for one batch run.
type TypeStats struct {
	Created int
	Updated int
	Skipped int
	Failed  int
	Pages   int
	Err     error
}

// RunReport is the outcome of one batch run.
type RunReport struct {
	SiteID    int64
	StartedAt time.Time
	Duration  time.Duration
	RefData   map[RefType]*TypeStats
	Content   map[ContentType]*TypeStats
}

// NewRunReport returns a report with empty counters for the run's scope.
func NewRunReport(siteID int64, startedAt time.Time) *RunReport {
	return &RunReport{
		SiteID:    siteID,
		StartedAt: startedAt,
		RefData:   make(map[RefType]*TypeStats),
		Content:   make(map[ContentType]*TypeStats),
	}
}

// Failed reports whether any type in the run's scope ended in failure.
func (r *RunReport) Failed() bool {
	for _, s := range r.RefData {
		if s.Err != nil || s.Failed > 0 {
			return true
		}
	}
	for _, s := range r.Content {
		if s.Err != nil || s.Failed > 0 {
			return true
		}
	}
	return false
}
