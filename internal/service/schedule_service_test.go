package service

import (
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveItem_PropagatesDownChain(t *testing.T) {
	f, ctx := setup(t)
	f.addItem(t, ctx, testutil.NewTestWorkItem("a", testutil.WithID("a"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(mon, mon)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("b", testutil.WithID("b"), testutil.WithSpan(tue, tue)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("c", testutil.WithID("c"), testutil.WithSpan(wed, wed)))
	_, err := f.relSvc.Create(ctx, "a", "b", 0)
	require.NoError(t, err)
	_, err = f.relSvc.Create(ctx, "b", "c", 0)
	require.NoError(t, err)

	result, err := f.schedSvc.MoveItem(ctx, "a", mon, wed)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, result.MutatedIDs(), "seed included alongside reflowed successors")

	assert.Equal(t, thu, *f.reload(t, ctx, "b").StartDate)
	assert.Equal(t, fri, *f.reload(t, ctx, "c").StartDate)
}

func TestMoveItem_MakesItemManual(t *testing.T) {
	f, ctx := setup(t)
	f.addItem(t, ctx, testutil.NewTestWorkItem("a", testutil.WithID("a"), testutil.WithSpan(mon, mon)))

	_, err := f.schedSvc.MoveItem(ctx, "a", tue, wed)
	require.NoError(t, err)

	a := f.reload(t, ctx, "a")
	assert.Equal(t, domain.SchedulingManual, a.SchedulingMode)
	assert.Equal(t, tue, *a.StartDate)
	assert.Equal(t, wed, *a.FinishDate)
}

func TestMoveItem_RejectsInvertedSpan(t *testing.T) {
	f, ctx := setup(t)
	f.addItem(t, ctx, testutil.NewTestWorkItem("a", testutil.WithID("a")))
	_, err := f.schedSvc.MoveItem(ctx, "a", wed, mon)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")
}

func TestMoveItem_Unknown(t *testing.T) {
	f, ctx := setup(t)
	_, err := f.schedSvc.MoveItem(ctx, "ghost", mon, tue)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetMode_ManualToAutomaticRederives(t *testing.T) {
	f, ctx := setup(t)
	f.addItem(t, ctx, testutil.NewTestWorkItem("a", testutil.WithID("a"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(mon, wed)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("b", testutil.WithID("b"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(mon, mon)))
	_, err := f.relSvc.Create(ctx, "a", "b", 0)
	require.NoError(t, err)
	require.Equal(t, mon, *f.reload(t, ctx, "b").StartDate, "manual successor keeps its dates")

	_, err = f.schedSvc.SetMode(ctx, "b", domain.SchedulingAutomatic)
	require.NoError(t, err)

	b := f.reload(t, ctx, "b")
	assert.Equal(t, domain.SchedulingAutomatic, b.SchedulingMode)
	assert.Equal(t, thu, *b.StartDate, "dates re-derived from the predecessor")
}

func TestSetMode_AutomaticToManualFreezes(t *testing.T) {
	f, ctx := setup(t)
	f.addItem(t, ctx, testutil.NewTestWorkItem("a", testutil.WithID("a"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(mon, mon)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("b", testutil.WithID("b")))
	_, err := f.relSvc.Create(ctx, "a", "b", 0)
	require.NoError(t, err)

	_, err = f.schedSvc.SetMode(ctx, "b", domain.SchedulingManual)
	require.NoError(t, err)

	b := f.reload(t, ctx, "b")
	assert.Equal(t, domain.SchedulingManual, b.SchedulingMode)
	assert.Equal(t, tue, *b.StartDate, "frozen at the derived dates")
}

func TestSetMode_Invalid(t *testing.T) {
	f, ctx := setup(t)
	_, err := f.schedSvc.SetMode(ctx, "a", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scheduling mode")
}

func TestReflow_RederivesFromSeed(t *testing.T) {
	f, ctx := setup(t)
	f.addItem(t, ctx, testutil.NewTestWorkItem("a", testutil.WithID("a"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(mon, mon)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("b", testutil.WithID("b")))
	_, err := f.relSvc.Create(ctx, "a", "b", 0)
	require.NoError(t, err)

	// Corrupt b's dates behind the engine's back, then reflow.
	b := f.reload(t, ctx, "b")
	require.NoError(t, b.SetSpan(fri, fri))
	require.NoError(t, f.items.Update(ctx, b))

	result, err := f.schedSvc.Reflow(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, result.MutatedIDs())
	assert.Equal(t, tue, *f.reload(t, ctx, "b").StartDate)
}

func TestReflow_SeedsAcrossHierarchyRegions(t *testing.T) {
	f, ctx := setup(t)
	f.addItem(t, ctx, testutil.NewTestWorkItem("a", testutil.WithID("a"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(mon, mon)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("b", testutil.WithID("b")))
	f.addItem(t, ctx, testutil.NewTestWorkItem("c", testutil.WithID("c"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(tue, tue)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("d", testutil.WithID("d")))
	_, err := f.relSvc.Create(ctx, "a", "b", 0)
	require.NoError(t, err)
	_, err = f.relSvc.Create(ctx, "c", "d", 0)
	require.NoError(t, err)

	for _, id := range []string{"b", "d"} {
		w := f.reload(t, ctx, id)
		require.NoError(t, w.SetSpan(fri, fri))
		require.NoError(t, f.items.Update(ctx, w))
	}

	result, err := f.schedSvc.Reflow(ctx, "b", "d")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, result.MutatedIDs())
	assert.Equal(t, tue, *f.reload(t, ctx, "b").StartDate)
	assert.Equal(t, wed, *f.reload(t, ctx, "d").StartDate)
}

func TestReflow_NoSeedsIsNoOp(t *testing.T) {
	f, ctx := setup(t)
	result, err := f.schedSvc.Reflow(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Mutated)
}

func TestMoveItem_ConcernSurfacesForManualContainer(t *testing.T) {
	f, ctx := setup(t)
	f.addItem(t, ctx, testutil.NewTestWorkItem("parent", testutil.WithID("parent"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(mon, wed)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("pred", testutil.WithID("pred"),
		testutil.WithMode(domain.SchedulingManual), testutil.WithSpan(mon, mon)))
	f.addItem(t, ctx, testutil.NewTestWorkItem("child", testutil.WithID("child"),
		testutil.WithParent("parent"), testutil.WithSpan(tue, tue)))
	_, err := f.relSvc.Create(ctx, "pred", "child", 0)
	require.NoError(t, err)

	result, err := f.schedSvc.MoveItem(ctx, "pred", mon, fri)
	require.NoError(t, err)

	require.Len(t, result.Concerns, 1)
	concern := result.Concerns[0]
	assert.Equal(t, "parent", concern.ParentID)
	assert.Equal(t, "child", concern.ChildID)

	parent := f.reload(t, ctx, "parent")
	assert.Equal(t, mon, *parent.StartDate, "manual container never auto-corrected")
	assert.Equal(t, wed, *parent.FinishDate)
}
