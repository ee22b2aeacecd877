package branchless

import "github.com/go-git/go-git/v5/plumbing"

// HideCommits removes abandoned subtrees from the graph in place: a node is
// removed when it is marked hidden and every child of it is removed too, so
// whole dead branches disappear but nothing with live work downstream does.
//
// unhideable holds the commits pointed to by HEAD or a local branch. Those
// are actively referenced, so neither they nor (transitively) their
// ancestors are ever removed.
//
// Main nodes get one extra exemption: the continuation of the main line is
// not counted as a child when deciding whether a main node is abandoned,
// since main always continues past a merge-base and that alone must never
// hide it.
func HideCommits(graph CommitGraph, unhideable HashSet) {
	hider := &commitHider{
		graph:      graph,
		unhideable: unhideable,
		memo:       make(map[plumbing.Hash]bool, len(graph)),
	}

	toHide := make(HashSet)
	for oid := range graph {
		if hider.shouldHide(oid) {
			toHide[oid] = empty{}
		}
	}

	// The eligible set is complete before any mutation, so removal order
	// does not matter.
	for oid := range toHide {
		parentOid := graph[oid].Parent
		delete(graph, oid)
		if parent, found := graph[parentOid]; found {
			delete(parent.Children, oid)
		}
	}
}

// commitHider memoizes the hide predicate for one HideCommits call. The
// answers depend on this specific graph instance and must not outlive it.
type commitHider struct {
	graph      CommitGraph
	unhideable HashSet
	memo       map[plumbing.Hash]bool
}

// shouldHide evaluates the hide predicate with an explicit work stack, since
// a long-lived branch can be deep enough to make call-stack recursion risky.
func (h *commitHider) shouldHide(oid plumbing.Hash) bool {
	if hide, done := h.memo[oid]; done {
		return hide
	}

	inProgress := make(map[plumbing.Hash]empty)
	stack := []plumbing.Hash{oid}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if _, done := h.memo[top]; done {
			stack = stack[:len(stack)-1]
			continue
		}

		node := h.graph[top]

		if _, pinned := h.unhideable[top]; pinned {
			h.memo[top] = false
			stack = stack[:len(stack)-1]
			continue
		}
		if node.IsVisible {
			h.memo[top] = false
			stack = stack[:len(stack)-1]
			continue
		}

		if _, visiting := inProgress[top]; !visiting {
			inProgress[top] = empty{}

			pending := false
			for child := range node.Children {
				if node.IsMain && h.graph[child].IsMain {
					continue
				}
				if _, done := h.memo[child]; done {
					continue
				}
				if _, visiting := inProgress[child]; visiting {
					// should not happen: the graph is acyclic by
					// construction, but never loop if it is not
					continue
				}
				stack = append(stack, child)
				pending = true
			}
			if pending {
				continue
			}
		}

		hide := true
		for child := range node.Children {
			if node.IsMain && h.graph[child].IsMain {
				continue
			}
			childHide, done := h.memo[child]
			if !done || !childHide {
				hide = false
				break
			}
		}

		h.memo[top] = hide
		delete(inProgress, top)
		stack = stack[:len(stack)-1]
	}

	return h.memo[oid]
}
