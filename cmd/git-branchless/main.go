package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	newRootCmd().Execute()
}

type rootCmd struct {
	*cobra.Command

	configPath string
	mainBranch string
}

func newRootCmd() *rootCmd {
	c := &rootCmd{
		Command: &cobra.Command{
			Use:   "git-branchless",
			Short: "branchless workflow for git",
		},
	}

	c.PersistentFlags().StringVarP(&c.configPath, "config", "c", c.configPath, "path to the configuration (default .git/branchless/config.yaml)")
	c.PersistentFlags().StringVarP(&c.mainBranch, "main-branch", "m", c.mainBranch, "name of the main branch, overriding the configuration")

	c.AddCommand(
		newSmartlogCmd(c).Command,
		newHideCmd(c).Command,
		newUnhideCmd(c).Command,
		newHookCmd(c).Command,
	)

	// bare git-branchless shows the smartlog
	c.Run = func(cmd *cobra.Command, args []string) {
		newSmartlogCmd(c).run(cmd, args)
	}

	return c
}

func cancelOnSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
