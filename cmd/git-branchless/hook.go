package main

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/cobra"

	"github.com/Spread0x/git-branchless/cmd"
	"github.com/Spread0x/git-branchless/eventlog"
)

type hookCmd struct {
	*cobra.Command

	root *rootCmd
}

// newHookCmd groups the subcommands meant to be invoked from git hooks, not
// by the user directly.
func newHookCmd(root *rootCmd) *hookCmd {
	c := &hookCmd{
		Command: &cobra.Command{
			Use:    "hook",
			Short:  "record repository activity, called from git hooks",
			Hidden: true,
		},
		root: root,
	}

	postCommit := &cobra.Command{
		Use:   "post-commit",
		Short: "record the commit HEAD points at",
		Args:  cobra.NoArgs,
		Run:   c.runPostCommit,
	}

	c.AddCommand(postCommit)

	return c
}

func (c *hookCmd) runPostCommit(*cobra.Command, []string) {
	env := cmd.GetOrPanic(openEnv(c.root))
	defer env.Close()

	headRef := cmd.GetOrPanic(env.repo.Reference(plumbing.HEAD, true))

	cmd.OrPanic(env.eventLog.AddEvents(eventlog.CommitEvent{
		Timestamp: time.Now(),
		CommitOid: headRef.Hash(),
	}))
}
