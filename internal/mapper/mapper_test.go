package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wpsync/internal/domain"
	"wpsync/internal/source/wordpress"
)

func fullRefMap() *RefMap {
	refs := NewRefMap()
	refs.Authors[7] = 70
	refs.Tags[3] = 30
	refs.Tags[4] = 40
	refs.Categories[5] = 50
	refs.Media[9] = 90
	return refs
}

func samplePost() *wordpress.Post {
	return &wordpress.Post{
		ID:       101,
		SiteID:   12345,
		Author:   wordpress.Author{ID: 7, Login: "alice"},
		Date:     "2026-03-01T10:00:00+02:00",
		Modified: "2026-03-01T11:30:00+02:00",
		Title:    "Caf&#233; &amp; Bar",
		URL:      "https://example.wordpress.com/2026/03/cafe/",
		ShortURL: "https://wp.me/p1-x",
		Content:  "<p>body</p>",
		Excerpt:  "body &amp; more",
		Slug:     "cafe",
		GUID:     "https://example.wordpress.com/?p=101",
		Status:   "publish",
		Sticky:   true,
		Type:     "post",
		Format:   "standard",
		Tags: map[string]wordpress.Tag{
			"go":   {ID: 4, Name: "go"},
			"news": {ID: 3, Name: "news"},
		},
		Categories:  map[string]wordpress.Category{"main": {ID: 5, Name: "Main"}},
		Attachments: map[string]wordpress.Media{"9": {ID: 9, Date: "2026-02-01T00:00:00Z", PostID: 101}},
	}
}

func TestMapPost(t *testing.T) {
	item, err := MapPost(12345, samplePost(), fullRefMap())
	require.NoError(t, err)

	assert.Equal(t, int64(12345), item.SiteID)
	assert.Equal(t, int64(101), item.RemoteID)
	assert.Equal(t, domain.TypePost, item.Type)
	assert.Equal(t, domain.StatusPublish, item.Status)
	assert.Equal(t, "Café & Bar", item.Title)
	assert.Equal(t, "body & more", item.Excerpt)
	assert.True(t, item.Sticky)

	require.NotNil(t, item.AuthorID)
	assert.Equal(t, int64(70), *item.AuthorID)

	// Zone offsets collapse to UTC.
	assert.Equal(t, time.UTC, item.PostDate.Location())
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), item.Modified)

	// Link IDs come out sorted regardless of map iteration order.
	assert.Equal(t, []int64{30, 40}, item.TagIDs)
	assert.Equal(t, []int64{50}, item.CategoryIDs)
	assert.Equal(t, []int64{90}, item.AttachmentIDs)
}

func TestMapPost_Deterministic(t *testing.T) {
	first, err := MapPost(12345, samplePost(), fullRefMap())
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := MapPost(12345, samplePost(), fullRefMap())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMapPost_ParentAndTopLevel(t *testing.T) {
	raw := samplePost()
	raw.Parent = wordpress.ParentRef{ID: 55}

	item, err := MapPost(12345, raw, fullRefMap())
	require.NoError(t, err)
	require.NotNil(t, item.ParentID)
	assert.Equal(t, int64(55), *item.ParentID)

	raw.Parent = wordpress.ParentRef{}
	item, err = MapPost(12345, raw, fullRefMap())
	require.NoError(t, err)
	assert.Nil(t, item.ParentID)
}

func TestMapPost_UnresolvedReferences(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RefMap)
		kind   domain.RefType
	}{
		{"author", func(r *RefMap) { delete(r.Authors, 7) }, domain.RefAuthor},
		{"tag", func(r *RefMap) { delete(r.Tags, 3) }, domain.RefTag},
		{"category", func(r *RefMap) { delete(r.Categories, 5) }, domain.RefCategory},
		{"media", func(r *RefMap) { delete(r.Media, 9) }, domain.RefMedia},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			refs := fullRefMap()
			tc.mutate(refs)

			_, err := MapPost(12345, samplePost(), refs)
			require.Error(t, err)

			var unresolved *UnresolvedReferenceError
			require.ErrorAs(t, err, &unresolved)
			assert.Equal(t, tc.kind, unresolved.Kind)
		})
	}
}

func TestMapPost_BadTimestamp(t *testing.T) {
	raw := samplePost()
	raw.Modified = "yesterday"

	_, err := MapPost(12345, raw, fullRefMap())
	assert.Error(t, err)
}

func TestMapAuthor(t *testing.T) {
	author := MapAuthor(12345, &wordpress.Author{
		ID:        7,
		Login:     "alice",
		Email:     "alice@example.com",
		Name:      "Alice &amp; Bob",
		NiceName:  "alice",
		URL:       "https://alice.example.com",
		AvatarURL: "https://gravatar.com/alice",
	})

	assert.Equal(t, int64(12345), author.SiteID)
	assert.Equal(t, int64(7), author.RemoteID)
	assert.Equal(t, "Alice & Bob", author.Name)
}

func TestMapCategory_Parent(t *testing.T) {
	cat := MapCategory(12345, &wordpress.Category{ID: 5, Name: "Sub", Parent: 3})
	require.NotNil(t, cat.ParentID)
	assert.Equal(t, int64(3), *cat.ParentID)

	top := MapCategory(12345, &wordpress.Category{ID: 6, Name: "Top"})
	assert.Nil(t, top.ParentID)
}

func TestMapMedia(t *testing.T) {
	width, height := 800, 600
	m, err := MapMedia(12345, &wordpress.Media{
		ID:       9,
		URL:      "https://example.files.wordpress.com/photo.jpg",
		Date:     "2026-02-01T08:00:00+00:00",
		PostID:   101,
		File:     "photo.jpg",
		MimeType: "image/jpeg",
		Width:    &width,
		Height:   &height,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(9), m.RemoteID)
	require.NotNil(t, m.PostRemoteID)
	assert.Equal(t, int64(101), *m.PostRemoteID)
	assert.Equal(t, time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC), m.UploadedAt)
}

func TestMapMedia_BadDate(t *testing.T) {
	_, err := MapMedia(12345, &wordpress.Media{ID: 9, Date: "not-a-date"})
	assert.Error(t, err)
}
