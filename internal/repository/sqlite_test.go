package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkItemRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSQLiteWorkItemRepo(testutil.NewTestDB(t))

	start := domain.Date(2025, time.June, 9)
	finish := domain.Date(2025, time.June, 13)
	w := testutil.NewTestWorkItem("design review",
		testutil.WithSpan(start, finish),
		testutil.WithDuration(5),
		testutil.WithIgnoreNonWorkingDays(),
	)
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "design review", got.Title)
	assert.Equal(t, start, *got.StartDate)
	assert.Equal(t, finish, *got.FinishDate)
	assert.Equal(t, domain.SchedulingAutomatic, got.SchedulingMode)
	assert.True(t, got.IgnoreNonWorkingDays)
	require.NotNil(t, got.DurationDays)
	assert.Equal(t, 5, *got.DurationDays)
	assert.Nil(t, got.ParentID)
}

func TestWorkItemRepo_NullableFieldsStayNil(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSQLiteWorkItemRepo(testutil.NewTestDB(t))

	w := testutil.NewTestWorkItem("undated")
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StartDate)
	assert.Nil(t, got.FinishDate)
	assert.Nil(t, got.DurationDays)
}

func TestWorkItemRepo_UpdateAndChildren(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSQLiteWorkItemRepo(testutil.NewTestDB(t))

	parent := testutil.NewTestWorkItem("parent", testutil.WithID("p"))
	child := testutil.NewTestWorkItem("child", testutil.WithID("c"), testutil.WithParent("p"))
	require.NoError(t, repo.Create(ctx, parent))
	require.NoError(t, repo.Create(ctx, child))

	children, err := repo.ListChildren(ctx, "p")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "c", children[0].ID)

	child.SchedulingMode = domain.SchedulingManual
	require.NoError(t, repo.Update(ctx, child))
	got, err := repo.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, domain.SchedulingManual, got.SchedulingMode)
}

func TestWorkItemRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSQLiteWorkItemRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Update(ctx, testutil.NewTestWorkItem("ghost"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRelationRepo_RoundTripAndIndexes(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	items := repository.NewSQLiteWorkItemRepo(database)
	rels := repository.NewSQLiteRelationRepo(database)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, items.Create(ctx, testutil.NewTestWorkItem(id, testutil.WithID(id))))
	}
	require.NoError(t, rels.Create(ctx, testutil.NewTestRelation("a", "c", 2)))
	require.NoError(t, rels.Create(ctx, testutil.NewTestRelation("b", "c", 0)))

	preds, err := rels.ListPredecessors(ctx, "c")
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "a", preds[0].PredecessorID)
	assert.Equal(t, 2, preds[0].Lag)

	succs, err := rels.ListSuccessors(ctx, "a")
	require.NoError(t, err)
	require.Len(t, succs, 1)
	assert.Equal(t, "c", succs[0].SuccessorID)

	require.NoError(t, rels.Delete(ctx, preds[0].ID))
	remaining, err := rels.List(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestRelationRepo_DuplicateRejectedBySchema(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	items := repository.NewSQLiteWorkItemRepo(database)
	rels := repository.NewSQLiteRelationRepo(database)

	require.NoError(t, items.Create(ctx, testutil.NewTestWorkItem("a", testutil.WithID("a"))))
	require.NoError(t, items.Create(ctx, testutil.NewTestWorkItem("b", testutil.WithID("b"))))
	require.NoError(t, rels.Create(ctx, testutil.NewTestRelation("a", "b", 0)))
	err := rels.Create(ctx, testutil.NewTestRelation("a", "b", 0))
	require.Error(t, err, "unique constraint on the endpoint pair")
}

func TestCalendarRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSQLiteCalendarRepo(testutil.NewTestDB(t))

	holiday := domain.Date(2025, time.December, 25)
	require.NoError(t, repo.AddNonWorkingDate(ctx, holiday))
	require.NoError(t, repo.AddNonWorkingDate(ctx, holiday), "idempotent insert")

	dates, err := repo.ListNonWorkingDates(ctx)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, holiday, dates[0])

	require.NoError(t, repo.RemoveNonWorkingDate(ctx, holiday))
	dates, err = repo.ListNonWorkingDates(ctx)
	require.NoError(t, err)
	assert.Empty(t, dates)
}
