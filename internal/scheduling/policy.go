package scheduling

import (
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/graph"
)

// CanDeriveDates reports whether an item's dates can be computed from its
// relations: only automatic items with at least one follows predecessor or at
// least one child qualify. Automatic items with neither stay unconstrained.
func CanDeriveDates(g *graph.Graph, w *domain.WorkItem) bool {
	if !w.Automatic() {
		return false
	}
	if len(g.PredecessorRelations(w.ID)) > 0 {
		return true
	}
	return len(g.Children(w.ID)) > 0
}

// FlipToManualIfUnderivable applies the required transition after relation
// removal: an automatic item left with nothing to derive dates from becomes
// manual, its dates frozen at their current values. Returns true when the
// mode changed.
func FlipToManualIfUnderivable(g *graph.Graph, w *domain.WorkItem) bool {
	if !w.Automatic() || CanDeriveDates(g, w) {
		return false
	}
	w.SchedulingMode = domain.SchedulingManual
	return true
}
