package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pbanos/sapling"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	setConfig
	treeConfig
	dataInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a labeled test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			err = config.loadMetadata()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if config.label == "" {
				fmt.Fprintln(os.Stderr, "no label column given by the label flag nor the metadata")
				os.Exit(3)
			}
			c, err := config.loadClassifier(ctx, sapling.WithLogger(config.logger))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			testingSet, err := config.readSet(ctx, config.dataInput, true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading testing set: %v\n", err)
				os.Exit(5)
			}
			testingSet, err = alignSet(testingSet, c.Tree())
			if err != nil {
				fmt.Fprintf(os.Stderr, "matching testing set to the tree columns: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Testing tree against testset with %d samples...", testingSet.Count())
			successRate, err := c.Test(testingSet.Rows, testingSet.Labels)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(7)
			}
			config.Logf("Done")
			fmt.Printf("%f success rate over %d samples\n", successRate, testingSet.Count())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to test the tree against (defaults to STDIN, interpreted as CSV)")
	config.setConfig.addFlags(cmd.PersistentFlags())
	config.treeConfig.addFlags(cmd.PersistentFlags(), "path to a file from which the tree to test will be read and parsed as JSON")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	return tcc.validateSource()
}
