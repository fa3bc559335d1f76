package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/hexmap/internal/config"
	"github.com/beetlebugorg/hexmap/internal/logging"
)

var verbose bool

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hexmap",
		Short:         "Render polygon datasets as H3 hexagon bins",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newResolutionCmd())

	return rootCmd
}

// newLogger overlays .env files onto the environment and then builds the
// command logger, so LOG_LEVEL and LOG_FORMAT from those files apply.
// Call it before config.Load.
func newLogger() *logrus.Entry {
	loaded := config.LoadEnv(nil)
	log := logging.NewLoggerWithService("hexmap")
	if verbose {
		log.Logger.SetLevel(logrus.DebugLevel)
	}
	if len(loaded) > 0 {
		log.WithField("files", loaded).Debug("Loaded env files")
	}
	return log
}
