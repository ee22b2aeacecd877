package branchless

import (
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// Roots returns the component roots of the graph, the nodes with no graph
// parent, ordered by commit time and then hash so renderers get a stable
// forest to walk.
func Roots(graph CommitGraph) []plumbing.Hash {
	result := make([]plumbing.Hash, 0, 1)
	for oid, node := range graph {
		if node.Parent.IsZero() {
			result = append(result, oid)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		ci, cj := graph[result[i]].Commit, graph[result[j]].Commit
		ti, tj := ci.Committer.When, cj.Committer.When
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return result[i].String() < result[j].String()
	})

	return result
}

// SortedChildren returns the children of a node by commit time and then
// hash, for deterministic rendering.
func SortedChildren(graph CommitGraph, oid plumbing.Hash) []plumbing.Hash {
	node, found := graph[oid]
	if !found {
		return nil
	}

	result := make([]plumbing.Hash, 0, len(node.Children))
	for child := range node.Children {
		result = append(result, child)
	}

	sort.Slice(result, func(i, j int) bool {
		ti := graph[result[i]].Commit.Committer.When
		tj := graph[result[j]].Commit.Committer.When
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return result[i].String() < result[j].String()
	})

	return result
}
