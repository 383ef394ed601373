package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/dataset/inputsample"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	setConfig
	treeConfig
	dataInput   string
	dataOutput  string
	interactive bool
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict labels for samples",
		Long: `Use the loaded tree to predict labels for the samples in a set, which is
written out with a label column holding the predictions, or for samples
whose values are given answering questions when run interactively`,
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
			c, err := config.loadClassifier(ctx, sapling.WithLogger(config.logger))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			if config.interactive {
				err = config.predictInteractively(ctx, c)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				return
			}
			s, err := config.readSet(ctx, config.dataInput, false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading set: %v\n", err)
				os.Exit(5)
			}
			s, err = alignSet(s, c.Tree())
			if err != nil {
				fmt.Fprintf(os.Stderr, "matching set to the tree columns: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Predicting labels for %d samples...", s.Count())
			s.Labels, err = c.PredictAll(s.Rows)
			if err != nil {
				fmt.Fprintf(os.Stderr, "predicting: %v\n", err)
				os.Exit(7)
			}
			if config.label == "" {
				config.label = "label"
			}
			err = config.writeSet(ctx, config.dataOutput, s)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing predictions: %v\n", err)
				os.Exit(8)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with samples to label (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.dataOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to write the labeled samples to (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().BoolVar(&(config.interactive), "interactive", false, "ask for the values of samples on STDIN and print their predicted labels")
	config.setConfig.addFlags(cmd.PersistentFlags())
	config.treeConfig.addFlags(cmd.PersistentFlags(), "path to a file from which the tree to predict with will be read and parsed as JSON")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	return pcc.validateSource()
}

func (pcc *predictCmdConfig) predictInteractively(ctx context.Context, c *sapling.Classifier) error {
	prompter := &inputsample.Prompter{Writer: os.Stdout, UndefinedValue: pcc.undefinedValue}
	r := inputsample.New(os.Stdin, c.Tree().Columns, prompter, pcc.undefinedValue)
	for {
		fmt.Println("Please provide the sample's values:")
		row, err := r.ReadRow(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading sample: %v", err)
		}
		label, err := c.Predict(row)
		if err != nil {
			return err
		}
		fmt.Printf("Predicted label is %s\n", label)
	}
}
