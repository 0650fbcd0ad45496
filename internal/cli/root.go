// Package cli wires the cobra command tree: analyze plus the
// project/sample persistence subcommands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fastqscope/internal/version"
)

var (
	cfgFile string
	dbFile  string
)

// Execute runs the root command, returning any error from a subcommand.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the fastqscope command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fastqscope",
		Short:   "Streaming FASTQ quality-control analyzer",
		Version: version.Main,
		Long: `fastqscope analyzes FASTQ files in a single streaming pass, producing
FastQC-style per-base and per-sequence quality distributions, GC and
N-content, duplication levels, adapter contamination, N50, and a
platform guess, graded pass/warn/fail against configurable thresholds.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("fastqscope " + version.Main)
			fmt.Println("Use 'fastqscope --help' for available commands")
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a thresholds/limits config file (defaults used when omitted)")
	rootCmd.PersistentFlags().StringVar(&dbFile, "db", "fastqscope.db", "path to the projects/samples SQLite database")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newSampleCmd())

	return rootCmd
}
