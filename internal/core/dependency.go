package core

import (
	"slices"

	"getatoms/internal/types"
)

// DependencyVerdict summarises the blockers of one bug.
type DependencyVerdict struct {
	// Unresolved lists blockers that still gate the bug, in DependsOn order.
	Unresolved []int
	// Ignored lists open blockers that are irrelevant to the target arch.
	Ignored []int
}

// HasUnresolved reports whether any blocker still gates the bug.
func (v DependencyVerdict) HasUnresolved() bool {
	return len(v.Unresolved) > 0
}

// CheckDependencies classifies the blockers of bug using the pre-fetched
// dependency records in deps. A blocker missing from deps could not be
// fetched (restricted or deleted) and counts as unresolved.
func CheckDependencies(bug types.Bug, deps map[int]types.Bug, archEmail string) DependencyVerdict {
	verdict := DependencyVerdict{}
	for _, id := range bug.DependsOn {
		blocker, ok := deps[id]
		if !ok {
			verdict.Unresolved = append(verdict.Unresolved, id)
			continue
		}
		if blocker.Status == types.StatusResolved {
			continue
		}
		if irrelevantBlocker(blocker, archEmail) {
			verdict.Ignored = append(verdict.Ignored, id)
			continue
		}
		verdict.Unresolved = append(verdict.Unresolved, id)
	}
	return verdict
}

// IsReady reports whether a bug with the given verdict may be processed.
// Unresolved blockers only exclude the bug when noDepends is set.
func IsReady(verdict DependencyVerdict, noDepends bool) bool {
	return !(verdict.HasUnresolved() && noDepends)
}

// irrelevantBlocker reports whether an open blocker is an arch testing
// bug that was sanity checked without asking for this arch.
func irrelevantBlocker(blocker types.Bug, archEmail string) bool {
	if !slices.Contains(types.StabilizationComponents, blocker.Component) {
		return false
	}
	if !blocker.HasFlag(types.FlagSanityCheck, types.FlagGranted) {
		return false
	}
	return !blocker.HasCC(archEmail)
}

// DependencyIDs collects the distinct blocker ids of bugs, in first-seen
// order.
func DependencyIDs(bugs []types.Bug) []int {
	seen := map[int]struct{}{}
	var ids []int
	for _, bug := range bugs {
		for _, id := range bug.DependsOn {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
