package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	logDir     string
	logger     *zap.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{logger: zap.NewNop()}
	rootCmd := &cobra.Command{
		Use:   "sapling",
		Short: "sapling is a tool to grow decision trees",
		Long:  `A tool to grow decision tree classifiers from your data, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.logger.Sync()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log what is being done on STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML file with values for the flags, which can also be set through SAPLING_* environment variables")
	rootCmd.PersistentFlags().StringVar(&(config.logDir), "log-dir", "", "directory to write daily rotated JSON logs to")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), predictCmd(config), treeCmd(config), serveCmd(config), setCmd(config))
	return rootCmd
}

/*
load fills the flags of the command that were not set on the command line
with the values given in the configuration file or the environment, and
builds the logger.
*/
func (rcc *rootCmdConfig) load(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix("SAPLING")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if rcc.configFile == "" {
		rcc.configFile = v.GetString("config")
	}
	if rcc.configFile != "" {
		v.SetConfigFile(rcc.configFile)
		err := v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("reading configuration from %s: %v", rcc.configFile, err)
		}
	}
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		err = f.Value.Set(v.GetString(f.Name))
		if err != nil {
			err = fmt.Errorf("setting %s from configuration: %v", f.Name, err)
		}
	})
	if err != nil {
		return err
	}
	rcc.logger, err = newLogger(rcc.verbose, rcc.logDir)
	return err
}

// Logf logs a formatted message shown on verbose runs
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rcc.logger.Sugar().Debugf(format, a...)
}
