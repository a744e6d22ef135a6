package repository

import (
	"context"
	"testing"

	"simpleforum/internal/models"
	"simpleforum/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CRUD(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	sections, posts := NewSectionRepository(db), NewPostRepository(db)

	section, err := sections.Create(ctx, models.Section{Name: "A", Description: "desc"})
	require.NoError(t, err)

	post, err := posts.Create(ctx, models.Post{SectionID: section.ID, Topic: "first", Description: "body"})
	require.NoError(t, err)
	assert.Equal(t, section.ID, post.SectionID)

	_, err = posts.Update(ctx, post.ID, models.Fields{"topic": "second"})
	require.NoError(t, err)
	updated, err := posts.Update(ctx, post.ID, models.Fields{"topic": "third"})
	require.NoError(t, err)
	assert.Equal(t, "third", updated.Topic)
	assert.Equal(t, "body", updated.Description)
	assert.False(t, updated.UpdatedAt.Before(post.UpdatedAt))

	require.NoError(t, posts.Delete(ctx, post.ID))
	ok, err := posts.Exists(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostRepository_CreateUnknownSection(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	_, err := NewPostRepository(db).Create(context.Background(), models.Post{SectionID: 77, Topic: "t"})
	assert.Error(t, err)
}

func TestPostRepository_Find_FiltersTopic(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	sections, posts := NewSectionRepository(db), NewPostRepository(db)

	// The section name matches the filter; only post topics may count.
	section, err := sections.Create(ctx, models.Section{Name: "release notes", Description: ""})
	require.NoError(t, err)
	for _, topic := range []string{"Release 1.0", "roadmap", "RELEASE 2.0"} {
		_, err := posts.Create(ctx, models.Post{SectionID: section.ID, Topic: topic})
		require.NoError(t, err)
	}

	page, err := posts.Find(ctx, "release", 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	for _, p := range page.Items {
		assert.NotEqual(t, "roadmap", p.Topic)
	}

	all, err := posts.Find(ctx, "", 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
}
