package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/server"
	"github.com/spf13/cobra"
)

type serveCmdConfig struct {
	*rootCmdConfig
	treeConfig
	addr string
}

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &serveCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Long:  `Serve the predictions of a tree over HTTP until interrupted`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			c, err := config.loadClassifier(ctx, sapling.WithLogger(config.logger))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if !config.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			err = server.New(c, config.logger).Run(ctx, config.addr)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.addr), "addr", "a", ":8080", "address to listen on")
	config.treeConfig.addFlags(cmd.Flags(), "path to a file from which the tree to serve will be read and parsed as JSON")
	return cmd
}

func (scc *serveCmdConfig) Validate() error {
	if scc.addr == "" {
		return fmt.Errorf("required addr flag was not set")
	}
	return scc.validateSource()
}
