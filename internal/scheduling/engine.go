package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/horizon/internal/calendar"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/graph"
)

// Validator checks non-scheduling business rules for an item. Validation
// failures never block propagation; they are collected in Result.Invalid.
type Validator func(*domain.WorkItem) []error

// Concern reports a manually scheduled container whose span no longer holds
// a descendant. The container's dates are never auto-corrected.
type Concern struct {
	ParentID string
	ChildID  string
	Message  string
}

// Result is the outcome of one rescheduling invocation.
type Result struct {
	// Mutated holds every item whose dates or scheduling mode changed,
	// ordered by ID.
	Mutated []*domain.WorkItem
	// Concerns lists containment violations against manual containers.
	Concerns []Concern
	// Invalid maps item IDs to business validation errors. Invalid items
	// still appear in Mutated.
	Invalid map[string][]error

	mutatedIDs map[string]bool
}

func newResult() *Result {
	return &Result{Invalid: make(map[string][]error), mutatedIDs: make(map[string]bool)}
}

// AddMutated records an item as mutated, ignoring duplicates. Exposed so the
// mutation service can fold mode flips into the same result.
func (r *Result) AddMutated(w *domain.WorkItem) {
	if r.mutatedIDs == nil {
		r.mutatedIDs = make(map[string]bool)
	}
	if r.mutatedIDs[w.ID] {
		return
	}
	r.mutatedIDs[w.ID] = true
	r.Mutated = append(r.Mutated, w)
	sort.Slice(r.Mutated, func(i, j int) bool { return r.Mutated[i].ID < r.Mutated[j].ID })
}

// MutatedIDs returns the IDs of mutated items, ordered.
func (r *Result) MutatedIDs() []string {
	out := make([]string, 0, len(r.Mutated))
	for _, w := range r.Mutated {
		out = append(out, w.ID)
	}
	return out
}

// Engine recomputes derived dates across the relation graph. It is pure: no
// I/O, single-threaded per invocation, mutating the graph's items in place.
type Engine struct {
	graph     *graph.Graph
	cal       *calendar.Calendar
	validator Validator
}

type EngineOption func(*Engine)

// WithValidator attaches a business-rule validator applied to mutated items.
func WithValidator(v Validator) EngineOption {
	return func(e *Engine) { e.validator = v }
}

func NewEngine(g *graph.Graph, cal *calendar.Calendar, opts ...EngineOption) *Engine {
	e := &Engine{graph: g, cal: cal}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reschedule recomputes derived dates for everything transitively affected by
// the seed items, in dependency order, to a fixpoint. Seeds themselves are
// recomputed too when automatic; callers seeding at a manually moved item get
// its successors reflowed without the seed being touched.
func (e *Engine) Reschedule(seedIDs ...string) (*Result, error) {
	for _, id := range seedIDs {
		if e.graph.Item(id) == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSeed, id)
		}
	}

	affected := e.affectedSet(seedIDs)
	order := e.topoOrder(affected)
	result := newResult()

	// Everything starts pending; recomputation re-marks downstream items.
	// Topological order makes a single pass sufficient; the outer loop and
	// budget guard against invariant violations, not expected input.
	pending := make(map[string]bool, len(order))
	for _, id := range order {
		pending[id] = true
	}
	budget := (len(order) + 1) * (len(order) + 1)
	iterations := 0

	for remaining := len(order); remaining > 0; {
		remaining = 0
		for _, id := range order {
			if !pending[id] {
				continue
			}
			iterations++
			if iterations > budget {
				return nil, fmt.Errorf("%w: %d iterations over %d items", ErrIterationBudget, iterations, len(order))
			}
			pending[id] = false
			if e.recompute(e.graph.Item(id)) {
				result.AddMutated(e.graph.Item(id))
				for _, next := range e.influenced(id) {
					if affected[next] && !pending[next] {
						pending[next] = true
					}
				}
			}
		}
		for _, p := range pending {
			if p {
				remaining++
			}
		}
	}

	e.collectConcerns(result)
	e.collectInvalid(result)
	return result, nil
}

// affectedSet is the closure of the seeds over scheduling influence:
// follows successors and parents (roll-up).
func (e *Engine) affectedSet(seedIDs []string) map[string]bool {
	affected := make(map[string]bool)
	queue := append([]string(nil), seedIDs...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if affected[cur] {
			continue
		}
		affected[cur] = true
		queue = append(queue, e.influenced(cur)...)
	}
	return affected
}

// influenced returns the items whose derived dates depend on the given item.
func (e *Engine) influenced(id string) []string {
	var out []string
	for _, r := range e.graph.SuccessorRelations(id) {
		out = append(out, r.SuccessorID)
	}
	if p := e.graph.Parent(id); p != nil {
		out = append(out, p.ID)
	}
	return out
}

// topoOrder runs Kahn's algorithm over the influence edges restricted to the
// affected set, breaking ties by lowest ID for determinism.
func (e *Engine) topoOrder(affected map[string]bool) []string {
	indegree := make(map[string]int, len(affected))
	for id := range affected {
		indegree[id] += 0
	}
	for id := range affected {
		for _, next := range e.influenced(id) {
			if affected[next] {
				indegree[next]++
			}
		}
	}

	var ready []string
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(affected))
	for len(ready) > 0 {
		cur := ready[0]
		ready = ready[1:]
		order = append(order, cur)
		newlyReady := false
		for _, next := range e.influenced(cur) {
			if !affected[next] {
				continue
			}
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
				newlyReady = true
			}
		}
		if newlyReady {
			sort.Strings(ready)
		}
	}

	// Leftovers mean a cycle slipped past the mutation-time check; append
	// them so the budget guard surfaces the problem instead of looping.
	if len(order) < len(affected) {
		var rest []string
		seen := make(map[string]bool, len(order))
		for _, id := range order {
			seen[id] = true
		}
		for id := range affected {
			if !seen[id] {
				rest = append(rest, id)
			}
		}
		sort.Strings(rest)
		order = append(order, rest...)
	}
	return order
}

// recompute derives the item's dates from its relations. Returns true when
// the span changed. Manual items are never touched.
func (e *Engine) recompute(w *domain.WorkItem) bool {
	if !w.Automatic() {
		return false
	}
	if rels := e.graph.PredecessorRelations(w.ID); len(rels) > 0 {
		return e.deriveFromPredecessors(w, rels)
	}
	if children := e.graph.Children(w.ID); len(children) > 0 {
		return e.rollUpFromChildren(w, children)
	}
	return false
}

// deriveFromPredecessors applies the follows constraint: the item starts at
// the latest of (predecessor finish + 1 + lag working days) across its
// predecessors. The governing predecessor is the one yielding the latest
// candidate; ties resolve to the lowest predecessor ID via the sorted
// relation order. Predecessors without a finish date do not constrain.
func (e *Engine) deriveFromPredecessors(w *domain.WorkItem, rels []*domain.Relation) bool {
	var candidate time.Time
	found := false
	for _, r := range rels {
		pred := e.graph.Item(r.PredecessorID)
		if pred.FinishDate == nil {
			continue
		}
		c := e.cal.AddWorkingDays(*pred.FinishDate, 1+r.Lag, w.IgnoreNonWorkingDays)
		if !found || c.After(candidate) {
			candidate = c
			found = true
		}
	}
	if !found {
		return false
	}

	duration := 1
	switch {
	case w.DurationDays != nil:
		duration = *w.DurationDays
	case w.HasDates():
		duration = e.cal.WorkingDaysBetween(*w.StartDate, *w.FinishDate, w.IgnoreNonWorkingDays)
		if duration < 1 {
			duration = 1
		}
	}
	finish := e.cal.SpanFinish(candidate, duration, w.IgnoreNonWorkingDays)
	return e.assignSpan(w, &candidate, &finish)
}

// rollUpFromChildren spans the item over the union of its children's dates.
// Manual children count: their dates are still real commitments.
func (e *Engine) rollUpFromChildren(w *domain.WorkItem, children []*domain.WorkItem) bool {
	var start, finish *time.Time
	for _, c := range children {
		if c.StartDate != nil && (start == nil || c.StartDate.Before(*start)) {
			start = c.StartDate
		}
		if c.FinishDate != nil && (finish == nil || c.FinishDate.After(*finish)) {
			finish = c.FinishDate
		}
	}
	if start == nil && finish == nil {
		return false
	}
	if start == nil {
		start = w.StartDate
	}
	if finish == nil {
		finish = w.FinishDate
	}
	return e.assignSpan(w, start, finish)
}

func (e *Engine) assignSpan(w *domain.WorkItem, start, finish *time.Time) bool {
	if datesEqual(w.StartDate, start) && datesEqual(w.FinishDate, finish) {
		return false
	}
	if start != nil {
		s := *start
		w.StartDate = &s
	} else {
		w.StartDate = nil
	}
	if finish != nil {
		f := *finish
		w.FinishDate = &f
	} else {
		w.FinishDate = nil
	}
	return true
}

// collectConcerns reports mutated items that escaped the span of a manually
// scheduled ancestor. The ancestor's dates stay untouched.
func (e *Engine) collectConcerns(result *Result) {
	seen := make(map[string]bool)
	for _, w := range result.Mutated {
		if !w.HasDates() {
			continue
		}
		for _, ancestor := range e.graph.Ancestors(w.ID) {
			if !ancestor.Manual() || !ancestor.HasDates() {
				continue
			}
			if !w.StartDate.Before(*ancestor.StartDate) && !w.FinishDate.After(*ancestor.FinishDate) {
				continue
			}
			key := ancestor.ID + "/" + w.ID
			if seen[key] {
				continue
			}
			seen[key] = true
			result.Concerns = append(result.Concerns, Concern{
				ParentID: ancestor.ID,
				ChildID:  w.ID,
				Message: fmt.Sprintf("%s (%s..%s) falls outside manually scheduled %s (%s..%s)",
					w.ID, w.StartDate.Format(domain.DateFormat), w.FinishDate.Format(domain.DateFormat),
					ancestor.ID, ancestor.StartDate.Format(domain.DateFormat), ancestor.FinishDate.Format(domain.DateFormat)),
			})
		}
	}
	sort.Slice(result.Concerns, func(i, j int) bool {
		if result.Concerns[i].ParentID != result.Concerns[j].ParentID {
			return result.Concerns[i].ParentID < result.Concerns[j].ParentID
		}
		return result.Concerns[i].ChildID < result.Concerns[j].ChildID
	})
}

func (e *Engine) collectInvalid(result *Result) {
	if e.validator == nil {
		return
	}
	for _, w := range result.Mutated {
		if errs := e.validator(w); len(errs) > 0 {
			result.Invalid[w.ID] = errs
		}
	}
}

func datesEqual(a, b *time.Time) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || domain.SameDate(*a, *b)
}
