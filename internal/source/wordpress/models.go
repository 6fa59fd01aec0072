package wordpress

import (
	"bytes"
	"encoding/json"
)

// Raw payload shapes of the WordPress.com REST API v1.1.
// Posts embed their author, tags, categories and attachments in full, which
// lets the loader create missing reference rows without extra requests.

type PostsResponse struct {
	Found int    `json:"found"`
	Posts []Post `json:"posts"`
	Meta  Meta   `json:"meta"`
}

// Meta carries the opaque cursor for the next page of a posts listing.
type Meta struct {
	NextPage string `json:"next_page"`
}

type Post struct {
	ID            int64               `json:"ID"`
	SiteID        int64               `json:"site_ID"`
	Author        Author              `json:"author"`
	Date          string              `json:"date"`
	Modified      string              `json:"modified"`
	Title         string              `json:"title"`
	URL           string              `json:"URL"`
	ShortURL      string              `json:"short_URL"`
	Content       string              `json:"content"`
	Excerpt       string              `json:"excerpt"`
	Slug          string              `json:"slug"`
	GUID          string              `json:"guid"`
	Status        string              `json:"status"`
	Sticky        bool                `json:"sticky"`
	Parent        ParentRef           `json:"parent"`
	Type          string              `json:"type"`
	FeaturedImage string              `json:"featured_image"`
	Format        string              `json:"format"`
	MenuOrder     int                 `json:"menu_order"`
	LikeCount     int                 `json:"like_count"`
	Tags          map[string]Tag      `json:"tags"`
	Categories    map[string]Category `json:"categories"`
	Attachments   map[string]Media    `json:"attachments"`
}

// ParentRef is the parent post reference. The API sends the JSON literal
// false for top-level posts and an object for children.
type ParentRef struct {
	ID int64 `json:"ID"`
}

func (p *ParentRef) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("false")) || bytes.Equal(data, []byte("null")) {
		p.ID = 0
		return nil
	}
	type parent ParentRef
	return json.Unmarshal(data, (*parent)(p))
}

type CategoriesResponse struct {
	Found      int        `json:"found"`
	Categories []Category `json:"categories"`
}

type Category struct {
	ID          int64  `json:"ID"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PostCount   int    `json:"post_count"`
	Parent      int64  `json:"parent"`
}

type TagsResponse struct {
	Found int   `json:"found"`
	Tags  []Tag `json:"tags"`
}

type Tag struct {
	ID          int64  `json:"ID"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PostCount   int    `json:"post_count"`
}

type UsersResponse struct {
	Found int      `json:"found"`
	Users []Author `json:"users"`
}

type Author struct {
	ID        int64  `json:"ID"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	NiceName  string `json:"nice_name"`
	URL       string `json:"URL"`
	AvatarURL string `json:"avatar_URL"`
}

type MediaResponse struct {
	Found int     `json:"found"`
	Media []Media `json:"media"`
}

type Media struct {
	ID          int64  `json:"ID"`
	URL         string `json:"URL"`
	GUID        string `json:"guid"`
	Date        string `json:"date"`
	PostID      int64  `json:"post_ID"`
	File        string `json:"file"`
	Extension   string `json:"extension"`
	MimeType    string `json:"mime_type"`
	Width       *int   `json:"width"`
	Height      *int   `json:"height"`
	Title       string `json:"title"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
	Alt         string `json:"alt"`
}
