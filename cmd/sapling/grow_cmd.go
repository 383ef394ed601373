package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pbanos/sapling"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	setConfig
	treeConfig
	dataInput string
	maxDepth  int
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a labeled set of data to predict its labels.`,
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
			config.Logf("Reading training set...")
			trainingSet, err := config.readSet(ctx, config.dataInput, true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading training set: %v\n", err)
				os.Exit(4)
			}
			c := sapling.New(config.maxDepth, sapling.WithLogger(config.logger), sapling.WithColumnNames(trainingSet.Header))
			if config.metadata != nil {
				err = c.SetColumnTypes(config.metadata.Types())
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
			}
			config.Logf("Growing tree from a set with %d samples and %d columns to predict %s ...", trainingSet.Count(), trainingSet.Width(), config.label)
			err = c.Train(trainingSet.Rows, trainingSet.Labels)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(6)
			}
			if c.Tree() == nil {
				fmt.Fprintln(os.Stderr, "growing the tree: the training set is empty")
				os.Exit(7)
			}
			config.Logf("Done")
			config.Logf("%v", c.Tree())
			err = config.saveTree(ctx, c.Tree())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().IntVarP(&(config.maxDepth), "max-depth", "d", sapling.DefaultMaxDepth, "maximum depth of the tree, the root being at depth 0")
	config.setConfig.addFlags(cmd.PersistentFlags())
	config.treeConfig.addFlags(cmd.PersistentFlags(), "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT unless stored on redis)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.maxDepth < 0 {
		return fmt.Errorf("max-depth must not be negative")
	}
	if (gcc.model == "") != (gcc.redisAddr == "") {
		return fmt.Errorf("the model and redis-addr flags must be set together")
	}
	return nil
}
