package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"simpleforum/internal/models"
	"simpleforum/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionRepository_Exists_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSectionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "sections" WHERE id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := repo.Exists(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepository_Delete_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSectionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sections" WHERE "sections"."id" = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepository_Update_EmptyFieldsSkipsWrite(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSectionRepository(db)
	now := time.Now()

	// Only the reload is expected.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sections" WHERE "sections"."id" = $1`)).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(3, "General", "talk", now, now))

	got, err := repo.Update(context.Background(), 3, models.Fields{})
	require.NoError(t, err)
	assert.Equal(t, "General", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_CountsOverSubquery_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSectionRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT \* FROM "sections" WHERE LOWER\(name\) LIKE LOWER\(\$1\) ORDER BY created_at DESC.*\) AS query`).
		WithArgs("%gen%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(50))
	mock.ExpectQuery(`SELECT \* FROM "sections" WHERE LOWER\(name\) LIKE LOWER\(\$1\) ORDER BY created_at DESC.* LIMIT .* OFFSET .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(26, "General 26", "", now, now))

	page, err := repo.Find(context.Background(), "gen", 2, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(50), page.Total)
	assert.Equal(t, 2, page.PageNum)
	assert.Equal(t, 25, page.PerPage)
	assert.Len(t, page.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepository_CRUD(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.Section{Name: "A", Description: "desc"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	_, err = repo.Update(ctx, created.ID, models.Fields{"name": "B"})
	require.NoError(t, err)
	_, err = repo.Update(ctx, created.ID, models.Fields{"name": "C"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "C", got.Name)
	assert.Equal(t, "desc", got.Description)

	ok, err := repo.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, created.ID))

	ok, err = repo.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Exists(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	gone, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSectionRepository_UpdateEmpty_KeepsTimestamp(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.Section{Name: "A", Description: "desc"})
	require.NoError(t, err)

	same, err := repo.Update(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.True(t, created.UpdatedAt.Equal(same.UpdatedAt))
}

func createSections(t *testing.T, repo SectionRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), models.Section{
			Name:        fmt.Sprintf("General %02d", i),
			Description: "d",
		})
		require.NoError(t, err)
	}
}

func TestSectionRepository_Find_Pages(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()
	createSections(t, repo, 50)

	first, err := repo.Find(ctx, "", models.DefaultPageNum, models.DefaultPerPage)
	require.NoError(t, err)
	assert.Equal(t, int64(50), first.Total)
	assert.Len(t, first.Items, 25)

	second, err := repo.Find(ctx, "", 2, 25)
	require.NoError(t, err)
	assert.Len(t, second.Items, 25)
	assert.NotEqual(t, first.Items[0].ID, second.Items[0].ID)

	third, err := repo.Find(ctx, "", 3, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(50), third.Total)
	assert.NotNil(t, third.Items)
	assert.Empty(t, third.Items)
}

func TestSectionRepository_Find_NameFilter(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Golang", "gopher den", "Rustaceans"} {
		_, err := repo.Create(ctx, models.Section{Name: name, Description: ""})
		require.NoError(t, err)
	}

	page, err := repo.Find(ctx, "GO", 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	for _, s := range page.Items {
		assert.NotEqual(t, "Rustaceans", s.Name)
	}
}

func TestSectionRepository_Find_LegacyOffset(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	createSections(t, NewSectionRepository(db), 30)

	all, err := NewSectionRepository(db).Find(ctx, "", 1, 30)
	require.NoError(t, err)
	require.Len(t, all.Items, 30)

	legacy := NewSectionRepository(db, WithOffset(LegacyPageOffset))
	page, err := legacy.Find(ctx, "", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	assert.Equal(t, all.Items[1].ID, page.Items[0].ID)
	assert.Equal(t, int64(30), page.Total)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, PageOffset(1, 25))
	assert.Equal(t, 50, PageOffset(3, 25))
	assert.Equal(t, 3, LegacyPageOffset(3, 25))
}
