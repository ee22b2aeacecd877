package main

import (
	"os"

	"github.com/spf13/cobra"

	branchless "github.com/Spread0x/git-branchless"
	"github.com/Spread0x/git-branchless/cmd"
)

type smartlogCmd struct {
	*cobra.Command

	root *rootCmd

	showHidden bool
}

func newSmartlogCmd(root *rootCmd) *smartlogCmd {
	c := &smartlogCmd{
		Command: &cobra.Command{
			Use:     "smartlog",
			Aliases: []string{"sl"},
			Short:   "show the commits you are working on",
			Args:    cobra.NoArgs,
		},
		root: root,
	}

	c.Flags().BoolVar(&c.showHidden, "hidden", c.showHidden, "keep hidden commits in the output")

	c.Run = c.run

	return c
}

func (c *smartlogCmd) run(*cobra.Command, []string) {
	ctx, cancel := cancelOnSignal()
	defer cancel()

	env := cmd.GetOrPanic(openEnv(c.root))
	defer env.Close()

	replayer := cmd.GetOrPanic(env.eventLog.Replay())

	mainOid := cmd.GetOrPanic(branchless.GetMainBranchOid(env.repo, env.mainBranch))

	headOid, graph, err := branchless.MakeGraph(
		ctx,
		env.repo,
		env.mergeBase,
		replayer,
		mainOid,
		!c.showHidden,
	)
	cmd.OrPanic(err)

	cmd.OrPanic(renderGraph(os.Stdout, env.repo, graph, headOid))
}
