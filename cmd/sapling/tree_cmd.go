package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pbanos/sapling/report"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeConfig
	format string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a decision tree",
		Long:  `Show a decision tree as text, as a Graphviz DOT graph or as a table of its nodes`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			c, err := config.loadClassifier(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			err = report.Write(os.Stdout, c.Tree(), report.Format(config.format))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.format), "format", "f", string(report.Text), fmt.Sprintf("format to show the tree in, one of %v", report.Formats))
	config.treeConfig.addFlags(cmd.Flags(), "path to a file from which the tree to show will be read and parsed as JSON")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	return tcc.validateSource()
}
