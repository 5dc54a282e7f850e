package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/horizon/internal/domain"
)

var (
	// ErrUnknownItem indicates a relation or query referenced an item
	// that is not part of the graph.
	ErrUnknownItem = errors.New("work item not in graph")

	// ErrWouldCycle indicates a relation was rejected because it would
	// create a dependency cycle.
	ErrWouldCycle = errors.New("relation would create a dependency cycle")

	// ErrDuplicateRelation indicates a follows edge between the same
	// predecessor and successor already exists.
	ErrDuplicateRelation = errors.New("relation already exists")
)

// Graph is the in-memory relation graph for one scheduling operation: work
// items plus follows edges, with the parent/child hierarchy carried on the
// items themselves. It is not safe for concurrent mutation; callers serialize
// access per graph region (see service.KeyedMutex).
type Graph struct {
	items map[string]*domain.WorkItem

	// follows adjacency, keyed both ways
	predecessors map[string][]*domain.Relation // by successor ID
	successors   map[string][]*domain.Relation // by predecessor ID

	children map[string][]string // by parent ID
}

// New builds a graph from caller-supplied items and relations. Relations
// referencing unknown items or duplicating an existing edge are rejected.
// The loaded relation set is assumed cycle-free (the invariant is enforced
// at mutation time); AddRelation re-checks when edges are added later.
func New(items []*domain.WorkItem, relations []*domain.Relation) (*Graph, error) {
	g := &Graph{
		items:        make(map[string]*domain.WorkItem, len(items)),
		predecessors: make(map[string][]*domain.Relation),
		successors:   make(map[string][]*domain.Relation),
		children:     make(map[string][]string),
	}
	for _, w := range items {
		if _, dup := g.items[w.ID]; dup {
			return nil, fmt.Errorf("duplicate work item %q", w.ID)
		}
		g.items[w.ID] = w
	}
	for _, w := range items {
		if w.ParentID == nil {
			continue
		}
		if _, ok := g.items[*w.ParentID]; !ok {
			return nil, fmt.Errorf("%w: parent %q of %q", ErrUnknownItem, *w.ParentID, w.ID)
		}
		g.children[*w.ParentID] = append(g.children[*w.ParentID], w.ID)
	}
	for _, r := range relations {
		if err := g.insert(r); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Item returns the work item with the given ID, or nil.
func (g *Graph) Item(id string) *domain.WorkItem {
	return g.items[id]
}

// Items returns every item in the graph, ordered by ID.
func (g *Graph) Items() []*domain.WorkItem {
	out := make([]*domain.WorkItem, 0, len(g.items))
	for _, w := range g.items {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PredecessorRelations returns the follows edges ending at the item, ordered
// by predecessor ID.
func (g *Graph) PredecessorRelations(id string) []*domain.Relation {
	rels := append([]*domain.Relation(nil), g.predecessors[id]...)
	sort.Slice(rels, func(i, j int) bool { return rels[i].PredecessorID < rels[j].PredecessorID })
	return rels
}

// SuccessorRelations returns the follows edges starting at the item, ordered
// by successor ID.
func (g *Graph) SuccessorRelations(id string) []*domain.Relation {
	rels := append([]*domain.Relation(nil), g.successors[id]...)
	sort.Slice(rels, func(i, j int) bool { return rels[i].SuccessorID < rels[j].SuccessorID })
	return rels
}

// DirectPredecessors returns the items the given item directly follows.
func (g *Graph) DirectPredecessors(id string) []*domain.WorkItem {
	rels := g.PredecessorRelations(id)
	out := make([]*domain.WorkItem, 0, len(rels))
	for _, r := range rels {
		out = append(out, g.items[r.PredecessorID])
	}
	return out
}

// DirectSuccessors returns the items directly following the given item.
func (g *Graph) DirectSuccessors(id string) []*domain.WorkItem {
	rels := g.SuccessorRelations(id)
	out := make([]*domain.WorkItem, 0, len(rels))
	for _, r := range rels {
		out = append(out, g.items[r.SuccessorID])
	}
	return out
}

// Parent returns the item's parent, or nil for roots.
func (g *Graph) Parent(id string) *domain.WorkItem {
	w := g.items[id]
	if w == nil || w.ParentID == nil {
		return nil
	}
	return g.items[*w.ParentID]
}

// Children returns the item's direct children, ordered by ID.
func (g *Graph) Children(id string) []*domain.WorkItem {
	ids := append([]string(nil), g.children[id]...)
	sort.Strings(ids)
	out := make([]*domain.WorkItem, 0, len(ids))
	for _, cid := range ids {
		out = append(out, g.items[cid])
	}
	return out
}

// Ancestors returns the chain of parents from nearest to root.
func (g *Graph) Ancestors(id string) []*domain.WorkItem {
	var out []*domain.WorkItem
	seen := map[string]bool{id: true}
	for p := g.Parent(id); p != nil && !seen[p.ID]; p = g.Parent(p.ID) {
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// Descendants returns the item's subtree, ordered by ID.
func (g *Graph) Descendants(id string, includeSelf bool) []*domain.WorkItem {
	var out []*domain.WorkItem
	if includeSelf {
		if w := g.items[id]; w != nil {
			out = append(out, w)
		}
	}
	queue := append([]string(nil), g.children[id]...)
	seen := map[string]bool{id: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		out = append(out, g.items[cur])
		queue = append(queue, g.children[cur]...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// WouldCreateCycle reports whether adding a follows edge from predID to
// succID would make the successor's scheduling influence reach back to the
// predecessor. Influence propagates along follows edges and from children to
// parents (roll-up). Relations between an item and its own ancestor or
// descendant are treated as cycles outright.
func (g *Graph) WouldCreateCycle(predID, succID string) bool {
	if predID == succID {
		return true
	}
	for _, a := range g.Ancestors(succID) {
		if a.ID == predID {
			return true
		}
	}
	for _, d := range g.Descendants(succID, false) {
		if d.ID == predID {
			return true
		}
	}

	// BFS from the successor along influence edges; visited set keeps the
	// walk linear in graph size.
	visited := map[string]bool{}
	queue := []string{succID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if cur == predID {
			return true
		}
		for _, r := range g.successors[cur] {
			queue = append(queue, r.SuccessorID)
		}
		if p := g.Parent(cur); p != nil {
			queue = append(queue, p.ID)
		}
	}
	return false
}

// AddRelation inserts a follows edge after checking the no-cycle invariant.
// The graph is unchanged when an error is returned.
func (g *Graph) AddRelation(r *domain.Relation) error {
	if _, ok := g.items[r.PredecessorID]; !ok {
		return fmt.Errorf("%w: predecessor %q", ErrUnknownItem, r.PredecessorID)
	}
	if _, ok := g.items[r.SuccessorID]; !ok {
		return fmt.Errorf("%w: successor %q", ErrUnknownItem, r.SuccessorID)
	}
	if g.WouldCreateCycle(r.PredecessorID, r.SuccessorID) {
		return fmt.Errorf("%w: %s -> %s", ErrWouldCycle, r.PredecessorID, r.SuccessorID)
	}
	return g.insert(r)
}

// RemoveRelation deletes the follows edge between the given endpoints and
// returns it, or nil when no such edge exists.
func (g *Graph) RemoveRelation(predID, succID string) *domain.Relation {
	var removed *domain.Relation
	g.predecessors[succID] = filterRelations(g.predecessors[succID], func(r *domain.Relation) bool {
		if r.PredecessorID == predID {
			removed = r
			return false
		}
		return true
	})
	if removed == nil {
		return nil
	}
	g.successors[predID] = filterRelations(g.successors[predID], func(r *domain.Relation) bool {
		return r.SuccessorID != succID
	})
	return removed
}

func (g *Graph) insert(r *domain.Relation) error {
	if _, ok := g.items[r.PredecessorID]; !ok {
		return fmt.Errorf("%w: predecessor %q", ErrUnknownItem, r.PredecessorID)
	}
	if _, ok := g.items[r.SuccessorID]; !ok {
		return fmt.Errorf("%w: successor %q", ErrUnknownItem, r.SuccessorID)
	}
	for _, existing := range g.predecessors[r.SuccessorID] {
		if existing.PredecessorID == r.PredecessorID {
			return fmt.Errorf("%w: %s -> %s", ErrDuplicateRelation, r.PredecessorID, r.SuccessorID)
		}
	}
	g.predecessors[r.SuccessorID] = append(g.predecessors[r.SuccessorID], r)
	g.successors[r.PredecessorID] = append(g.successors[r.PredecessorID], r)
	return nil
}

func filterRelations(rels []*domain.Relation, keep func(*domain.Relation) bool) []*domain.Relation {
	out := rels[:0]
	for _, r := range rels {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
