package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(parentConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: parentConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, for instance to keep a testing set apart from the training set`,
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
			s, err := config.readSet(ctx, config.setInput, config.label != "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading input set: %v\n", err)
				os.Exit(3)
			}
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			split, output := s.Split(float64(config.splitProbability)/100, rand.New(rand.NewSource(seed)))
			err = config.writeSet(ctx, config.setOutput, output)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing output set: %v\n", err)
				os.Exit(4)
			}
			err = config.writeSet(ctx, config.splitOutput, split)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing split set: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			config.Logf("Input set with %d samples was split into sets with %d and %d samples", s.Count(), output.Count(), split.Count())
		},
	}
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the split set (required)")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of samples (defaults to a time based one)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitOutput == scc.setOutput {
		return fmt.Errorf("split-output and output flags must differ")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}
