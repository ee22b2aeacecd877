package main

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/cobra"

	branchless "github.com/Spread0x/git-branchless"
	"github.com/Spread0x/git-branchless/cmd"
	"github.com/Spread0x/git-branchless/eventlog"
)

type hideCmd struct {
	*cobra.Command

	root *rootCmd
}

func newHideCmd(root *rootCmd) *hideCmd {
	c := &hideCmd{
		Command: &cobra.Command{
			Use:   "hide <revision>...",
			Short: "hide commits from the smartlog",
			Args:  cobra.MinimumNArgs(1),
		},
		root: root,
	}

	c.Run = c.run

	return c
}

func (c *hideCmd) run(_ *cobra.Command, args []string) {
	env := cmd.GetOrPanic(openEnv(c.root))
	defer env.Close()

	oids := resolveRevisions(env, args)

	events := make([]branchless.Event, 0, len(oids))
	now := time.Now()
	for _, oid := range oids {
		events = append(events, eventlog.HideEvent{Timestamp: now, CommitOid: oid})
	}
	cmd.OrPanic(env.eventLog.AddEvents(events...))

	for _, oid := range oids {
		fmt.Printf("hid commit %s\n", oid)
	}
	fmt.Println("to unhide, run: git-branchless unhide <revision>")
}

type unhideCmd struct {
	*cobra.Command

	root *rootCmd
}

func newUnhideCmd(root *rootCmd) *unhideCmd {
	c := &unhideCmd{
		Command: &cobra.Command{
			Use:   "unhide <revision>...",
			Short: "unhide commits previously hidden from the smartlog",
			Args:  cobra.MinimumNArgs(1),
		},
		root: root,
	}

	c.Run = c.run

	return c
}

func (c *unhideCmd) run(_ *cobra.Command, args []string) {
	env := cmd.GetOrPanic(openEnv(c.root))
	defer env.Close()

	oids := resolveRevisions(env, args)

	events := make([]branchless.Event, 0, len(oids))
	now := time.Now()
	for _, oid := range oids {
		events = append(events, eventlog.UnhideEvent{Timestamp: now, CommitOid: oid})
	}
	cmd.OrPanic(env.eventLog.AddEvents(events...))

	for _, oid := range oids {
		fmt.Printf("unhid commit %s\n", oid)
	}
}

func resolveRevisions(env *env, args []string) []plumbing.Hash {
	oids := make([]plumbing.Hash, 0, len(args))
	for _, arg := range args {
		h := cmd.GetOrPanic(env.repo.ResolveRevision(plumbing.Revision(arg)))
		oids = append(oids, *h)
	}

	return oids
}
