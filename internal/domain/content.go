package domain

import "time"

// ContentType is the kind of content item synced from the remote site.
// All three are "posts" on the WordPress side, distinguished by type.
type ContentType string

const (
	TypePost       ContentType = "post"
	TypePage       ContentType = "page"
	TypeAttachment ContentType = "attachment"
)

// ContentTypes lists content types in load order. Attachments come first so
// posts that reference them as featured media find them already present.
var ContentTypes = []ContentType{TypeAttachment, TypePost, TypePage}

// RefType is the kind of reference data content items depend on.
type RefType string

const (
	RefAuthor   RefType = "author"
	RefTag      RefType = "tag"
	RefCategory RefType = "category"
	RefMedia    RefType = "media"
)

// RefTypes lists reference types in load order.
var RefTypes = []RefType{RefCategory, RefTag, RefAuthor, RefMedia}

// Status is a remote publication status.
type Status string

const (
	StatusPublish Status = "publish"
	StatusPrivate Status = "private"
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusFuture  Status = "future"
	StatusTrash   Status = "trash"
	StatusAny     Status = "any"
)

// Valid reports whether s is a status the remote API accepts as a filter.
func (s Status) Valid() bool {
	switch s {
	case StatusPublish, StatusPrivate, StatusDraft, StatusPending, StatusFuture, StatusTrash, StatusAny:
		return true
	}
	return false
}

// ContentItem is a local copy of one remote post, page or attachment.
// The natural key is (SiteID, RemoteID); ID is the local surrogate key.
type ContentItem struct {
	ID       int64
	SiteID   int64
	RemoteID int64
	Type     ContentType
	Status   Status

	AuthorID *int64 // local author surrogate key

	PostDate time.Time
	Modified time.Time // remote modification time, authoritative for ordering

	Title         string
	URL           string
	ShortURL      string
	Content       string
	Excerpt       string
	Slug          string
	GUID          string
	Sticky        bool
	ParentID      *int64 // remote ID of the parent post, if any
	FeaturedImage string
	Format        string
	MenuOrder     int
	LikeCount     int

	// Local surrogate keys of linked reference rows.
	TagIDs        []int64
	CategoryIDs   []int64
	AttachmentIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Author is a local copy of a remote site user or guest byline.
type Author struct {
	ID        int64
	SiteID    int64
	RemoteID  int64
	Login     string
	Email     string
	Name      string
	NiceName  string
	URL       string
	AvatarURL string
}

// Tag is a local copy of a remote tag.
type Tag struct {
	ID          int64
	SiteID      int64
	RemoteID    int64
	Name        string
	Slug        string
	Description string
	PostCount   int
}

// Category is a local copy of a remote category.
type Category struct {
	ID          int64
	SiteID      int64
	RemoteID    int64
	Name        string
	Slug        string
	Description string
	PostCount   int
	ParentID    *int64 // remote ID of the parent category
}

// Media is a local copy of a remote media library entry.
type Media struct {
	ID           int64
	SiteID       int64
	RemoteID     int64
	URL          string
	GUID         string
	UploadedAt   time.Time
	PostRemoteID *int64 // remote ID of the post the file is attached to
	FileName     string
	Extension    string
	MimeType     string
	Width        *int
	Height       *int
	Title        string
	Caption      string
	Description  string
	Alt          string
}
