package cmd

import (
	"fmt"
	"os"

	"github.com/leadchoose/waitlistd/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

// FileSystemsConfig consists of the filesystems to use (either local or embed)
var FileSystemsConfig *config.FileSystems

var rootCommand = cobra.Command{
	Use:   "waitlistd",
	Short: "waitlistd is a waitlist capture service",
	Long: `waitlistd captures waitlist sign-ups and demo requests,
	sends double-opt-in confirmation emails and sweeps expired entries`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCommand.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {

	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")

	verifyCommand.AddCommand(&sendTestMailCommand)

	waitlistCommand.AddCommand(&listWaitlistCommand)

	rootCommand.AddCommand(&verifyCommand)
	rootCommand.AddCommand(&waitlistCommand)
	rootCommand.AddCommand(&cleanupCommand)
	rootCommand.AddCommand(&serveCommand)
}
