package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	branchless "github.com/Spread0x/git-branchless"
)

var (
	hashColor   = color.New(color.FgYellow)
	branchColor = color.New(color.FgGreen)
	headColor   = color.New(color.FgCyan, color.Bold)
	hiddenColor = color.New(color.FgRed)
)

// renderGraph prints the smartlog forest, one component per root, children
// indented under their parents.
func renderGraph(w io.Writer, repo *git.Repository, graph branchless.CommitGraph, headOid plumbing.Hash) error {
	branchNames, err := collectBranchNames(repo)
	if err != nil {
		return err
	}

	for _, root := range branchless.Roots(graph) {
		if err := renderComponent(w, graph, branchNames, headOid, root); err != nil {
			return err
		}
	}

	return nil
}

func renderComponent(
	w io.Writer,
	graph branchless.CommitGraph,
	branchNames map[plumbing.Hash][]string,
	headOid plumbing.Hash,
	root plumbing.Hash,
) error {
	type entry struct {
		oid   plumbing.Hash
		depth int
	}

	stack := []entry{{oid: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := renderNode(w, graph[top.oid], branchNames[top.oid], top.oid == headOid, top.depth); err != nil {
			return err
		}

		children := branchless.SortedChildren(graph, top.oid)
		// reversed so the earliest child is rendered first
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, entry{oid: children[i], depth: top.depth + 1})
		}
	}

	return nil
}

func renderNode(w io.Writer, node *branchless.Node, branches []string, isHead bool, depth int) error {
	var line strings.Builder

	line.WriteString(strings.Repeat("| ", depth))

	switch {
	case isHead:
		line.WriteString(headColor.Sprint("*"))
	case !node.IsVisible:
		line.WriteString(hiddenColor.Sprint("%"))
	default:
		line.WriteString("o")
	}

	line.WriteString(" ")
	line.WriteString(hashColor.Sprint(node.Commit.Hash.String()[:8]))

	if len(branches) > 0 {
		line.WriteString(branchColor.Sprintf(" (%s)", strings.Join(branches, ", ")))
	}

	line.WriteString(" ")
	line.WriteString(summary(node.Commit.Message))

	if !node.IsVisible {
		line.WriteString(hiddenColor.Sprint(" (hidden)"))
	}

	_, err := fmt.Fprintln(w, line.String())

	return err
}

func summary(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}

	return message
}

func collectBranchNames(repo *git.Repository) (map[plumbing.Hash][]string, error) {
	result := make(map[plumbing.Hash][]string)

	branches, err := repo.Branches()
	if err != nil {
		return nil, err
	}
	if err := branches.ForEach(func(ref *plumbing.Reference) error {
		result[ref.Hash()] = append(result[ref.Hash()], ref.Name().Short())
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}
