// Package mapper translates raw WordPress API records into domain records.
// Mapping is pure: the same raw input and reference map always produce the
// same output, so repeated syncs of unchanged content are byte-identical.
package mapper

import (
	"fmt"
	"html"
	"sort"
	"time"

	"wpsync/internal/domain"
	"wpsync/internal/source/wordpress"
)

// UnresolvedReferenceError means a post references an author, tag, category
// or media item that has no local row yet. In batch mode this signals a load
// ordering bug; the refresh path resolves it by loading the embedded
// reference data first.
type UnresolvedReferenceError struct {
	Kind     domain.RefType
	RemoteID int64
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved %s reference: remote id %d", e.Kind, e.RemoteID)
}

// RefMap resolves remote reference IDs to local surrogate keys.
type RefMap struct {
	Authors    map[int64]int64
	Tags       map[int64]int64
	Categories map[int64]int64
	Media      map[int64]int64
}

// NewRefMap returns an empty reference map.
func NewRefMap() *RefMap {
	return &RefMap{
		Authors:    make(map[int64]int64),
		Tags:       make(map[int64]int64),
		Categories: make(map[int64]int64),
		Media:      make(map[int64]int64),
	}
}

// MapPost maps a raw post into a content item, resolving its embedded
// references against refs.
func MapPost(siteID int64, raw *wordpress.Post, refs *RefMap) (*domain.ContentItem, error) {
	postDate, err := parseTime(raw.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date of post %d: %w", raw.ID, err)
	}
	modified, err := parseTime(raw.Modified)
	if err != nil {
		return nil, fmt.Errorf("parse modified of post %d: %w", raw.ID, err)
	}

	item := &domain.ContentItem{
		SiteID:        siteID,
		RemoteID:      raw.ID,
		Type:          domain.ContentType(raw.Type),
		Status:        domain.Status(raw.Status),
		PostDate:      postDate,
		Modified:      modified,
		Title:         html.UnescapeString(raw.Title),
		URL:           raw.URL,
		ShortURL:      raw.ShortURL,
		Content:       raw.Content,
		Excerpt:       html.UnescapeString(raw.Excerpt),
		Slug:          raw.Slug,
		GUID:          raw.GUID,
		Sticky:        raw.Sticky,
		FeaturedImage: raw.FeaturedImage,
		Format:        raw.Format,
		MenuOrder:     raw.MenuOrder,
		LikeCount:     raw.LikeCount,
	}

	if raw.Parent.ID != 0 {
		parent := raw.Parent.ID
		item.ParentID = &parent
	}

	if raw.Author.ID != 0 {
		localID, ok := refs.Authors[raw.Author.ID]
		if !ok {
			return nil, &UnresolvedReferenceError{Kind: domain.RefAuthor, RemoteID: raw.Author.ID}
		}
		item.AuthorID = &localID
	}

	for _, t := range raw.Tags {
		localID, ok := refs.Tags[t.ID]
		if !ok {
			return nil, &UnresolvedReferenceError{Kind: domain.RefTag, RemoteID: t.ID}
		}
		item.TagIDs = append(item.TagIDs, localID)
	}
	for _, c := range raw.Categories {
		localID, ok := refs.Categories[c.ID]
		if !ok {
			return nil, &UnresolvedReferenceError{Kind: domain.RefCategory, RemoteID: c.ID}
		}
		item.CategoryIDs = append(item.CategoryIDs, localID)
	}
	for _, m := range raw.Attachments {
		localID, ok := refs.Media[m.ID]
		if !ok {
			return nil, &UnresolvedReferenceError{Kind: domain.RefMedia, RemoteID: m.ID}
		}
		item.AttachmentIDs = append(item.AttachmentIDs, localID)
	}

	// The raw maps have no stable iteration order; sorting keeps mapping
	// deterministic.
	sortIDs(item.TagIDs)
	sortIDs(item.CategoryIDs)
	sortIDs(item.AttachmentIDs)

	return item, nil
}

// MapAuthor maps a raw site user or embedded byline author.
func MapAuthor(siteID int64, raw *wordpress.Author) *domain.Author {
	return &domain.Author{
		SiteID:    siteID,
		RemoteID:  raw.ID,
		Login:     raw.Login,
		Email:     raw.Email,
		Name:      html.UnescapeString(raw.Name),
		NiceName:  raw.NiceName,
		URL:       raw.URL,
		AvatarURL: raw.AvatarURL,
	}
}

// MapTag maps a raw tag.
func MapTag(siteID int64, raw *wordpress.Tag) *domain.Tag {
	return &domain.Tag{
		SiteID:      siteID,
		RemoteID:    raw.ID,
		Name:        html.UnescapeString(raw.Name),
		Slug:        raw.Slug,
		Description: raw.Description,
		PostCount:   raw.PostCount,
	}
}

// MapCategory maps a raw category.
func MapCategory(siteID int64, raw *wordpress.Category) *domain.Category {
	cat := &domain.Category{
		SiteID:      siteID,
		RemoteID:    raw.ID,
		Name:        html.UnescapeString(raw.Name),
		Slug:        raw.Slug,
		Description: raw.Description,
		PostCount:   raw.PostCount,
	}
	if raw.Parent != 0 {
		parent := raw.Parent
		cat.ParentID = &parent
	}
	return cat
}

// MapMedia maps a raw media entry.
func MapMedia(siteID int64, raw *wordpress.Media) (*domain.Media, error) {
	uploadedAt, err := parseTime(raw.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date of media %d: %w", raw.ID, err)
	}

	m := &domain.Media{
		SiteID:      siteID,
		RemoteID:    raw.ID,
		URL:         raw.URL,
		GUID:        raw.GUID,
		UploadedAt:  uploadedAt,
		FileName:    raw.File,
		Extension:   raw.Extension,
		MimeType:    raw.MimeType,
		Width:       raw.Width,
		Height:      raw.Height,
		Title:       html.UnescapeString(raw.Title),
		Caption:     raw.Caption,
		Description: raw.Description,
		Alt:         raw.Alt,
	}
	if raw.PostID != 0 {
		postID := raw.PostID
		m.PostRemoteID = &postID
	}
	return m, nil
}

// parseTime parses an API timestamp and normalizes it to UTC, the single
// canonical zone all watermark comparisons use.
func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
