package graph

import (
	"sort"
	"time"

	"github.com/alexanderramin/horizon/internal/calendar"
	"github.com/alexanderramin/horizon/internal/domain"
)

// DaysSelector names the days a caller is asking about: ISO weekdays
// projected over a horizon, plus literal dates. Either part may be empty.
type DaysSelector struct {
	From         time.Time
	Weekdays     []int
	Dates        []time.Time
	HorizonWeeks int
}

// CoveringItems returns every item whose inclusive span contains at least one
// selected date. Inclusion is by raw date-range containment: an item counts
// as covering a selected date even when that date is non-working, since the
// date itself was chosen by the caller. Ordered by item ID.
func (g *Graph) CoveringItems(cal *calendar.Calendar, sel DaysSelector) ([]*domain.WorkItem, error) {
	days, err := cal.ExpandDaysSelector(sel.From, sel.Weekdays, sel.Dates, sel.HorizonWeeks)
	if err != nil {
		return nil, err
	}
	var out []*domain.WorkItem
	for _, w := range g.Items() {
		if spanCoversAny(w, days) {
			out = append(out, w)
		}
	}
	return out, nil
}

// PredecessorsNeedingRescheduling finds, for every automatically scheduled
// successor covering a selected day, the farthest upstream item in its chain
// of latest-finishing predecessors that also covers a selected day.
// Rescheduling that one item ripples back down the whole chain, so the rest
// of the chain is not reported. Items that ignore non-working days are not
// affected by day-based calendar changes and are skipped as seeds.
// Deduplicated and ordered by item ID.
func (g *Graph) PredecessorsNeedingRescheduling(cal *calendar.Calendar, sel DaysSelector) ([]*domain.WorkItem, error) {
	days, err := cal.ExpandDaysSelector(sel.From, sel.Weekdays, sel.Dates, sel.HorizonWeeks)
	if err != nil {
		return nil, err
	}

	reported := make(map[string]*domain.WorkItem)
	for _, w := range g.Items() {
		if !w.Automatic() || w.IgnoreNonWorkingDays {
			continue
		}
		if len(g.predecessors[w.ID]) == 0 || !spanCoversAny(w, days) {
			continue
		}
		root := g.farthestCoveringUpstream(cal, w, days)
		reported[root.ID] = root
	}

	out := make([]*domain.WorkItem, 0, len(reported))
	for _, w := range reported {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// farthestCoveringUpstream walks the chain of governing (latest-finishing)
// predecessors and returns the most upstream chain member whose span covers
// a selected day. The walk is bounded by a visited set; the no-cycle
// invariant makes the guard a formality.
func (g *Graph) farthestCoveringUpstream(cal *calendar.Calendar, w *domain.WorkItem, days map[time.Time]bool) *domain.WorkItem {
	farthest := w
	visited := map[string]bool{w.ID: true}
	for cur := w; ; {
		pred := g.latestFinishingPredecessor(cal, cur)
		if pred == nil || visited[pred.ID] {
			return farthest
		}
		visited[pred.ID] = true
		if spanCoversAny(pred, days) {
			farthest = pred
		}
		cur = pred
	}
}

// latestFinishingPredecessor picks the predecessor constraining the item's
// start: the one whose finish advanced by 1+lag working days yields the
// latest candidate start, the same arithmetic date derivation uses. Ties
// go to the lowest predecessor ID via the sorted relation order; predecessors
// without a finish date do not constrain.
func (g *Graph) latestFinishingPredecessor(cal *calendar.Calendar, w *domain.WorkItem) *domain.WorkItem {
	var best *domain.WorkItem
	var bestCandidate time.Time
	for _, r := range g.PredecessorRelations(w.ID) {
		pred := g.items[r.PredecessorID]
		if pred.FinishDate == nil {
			continue
		}
		candidate := cal.AddWorkingDays(*pred.FinishDate, 1+r.Lag, w.IgnoreNonWorkingDays)
		if best == nil || candidate.After(bestCandidate) {
			best, bestCandidate = pred, candidate
		}
	}
	return best
}

func spanCoversAny(w *domain.WorkItem, days map[time.Time]bool) bool {
	for d := range days {
		if w.CoversDate(d) {
			return true
		}
	}
	return false
}
