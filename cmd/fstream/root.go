package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fstream/pkg/fstream"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fstream",
	Short: "A buffered binary file stream tool",
	Long: `fstream reads and writes files through a buffered, seekable binary
stream: small writes coalesce into 4 KiB platform writes, offsets and sizes
are tracked byte-accurately, and writes are capped at a 1 GB ceiling.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level (trace, debug, info, warn, error)")

	// Add version command
	rootCmd.AddCommand(versionCmd)

	// Add subcommands
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newCatCommand())
	rootCmd.AddCommand(newWriteCommand())
	rootCmd.AddCommand(newCopyCommand())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number of fstream`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fstream version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// newLogger builds the logger shared by subcommands from the --log-level flag.
func newLogger() zerolog.Logger {
	level, err := fstream.LogLevelFromString(logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return fstream.NewLogger(os.Stderr, level)
}
