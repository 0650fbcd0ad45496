package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fastqscope/internal/benchmark"
	"fastqscope/internal/htmlreport"
	"fastqscope/internal/qc"
	"fastqscope/internal/qcconfig"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		inPath        string
		jsonOut       string
		htmlPrefix    string
		benchmarkFlag bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the streaming quality-control analyzer over a FASTQ file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" {
				return errors.New("--in is required")
			}

			cfg, err := qcconfig.Load(cfgFile)
			if err != nil {
				return err
			}

			var report *qc.Report
			run := func() error {
				var runErr error
				report, runErr = qc.Analyze(context.Background(), inPath, cfg, os.Stdout)
				return runErr
			}

			if benchmarkFlag {
				err = benchmark.Run(os.Stdout, fmt.Sprintf("fastqscope analyze --in %s", inPath), run)
			} else {
				err = run()
			}
			if err != nil {
				// An analysis-time failure (bad path, corrupt gzip, malformed
				// record) is reported in the JSON envelope, not as a process
				// failure: only a missing --in is a usage error.
				printError(err)
				return nil
			}

			if htmlPrefix != "" {
				if err := htmlreport.Write(report, htmlPrefix); err != nil {
					return writeError(err)
				}
			}

			return writeReport(report, jsonOut)
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "input FASTQ file (plain or .gz)")
	cmd.Flags().StringVar(&jsonOut, "json-out", "-", "where to write the JSON report (\"-\" for stdout)")
	cmd.Flags().StringVar(&htmlPrefix, "html", "", "write an HTML chart report to <prefix>.html")
	cmd.Flags().BoolVar(&benchmarkFlag, "benchmark", false, "print resource-usage stats around the analysis run")

	return cmd
}

// printError prints {"error":"<message>"} to stdout, matching the
// documented failure envelope, without affecting the process exit code.
func printError(err error) {
	fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	fmt.Println(string(payload))
}

// writeError prints the same envelope as printError and also returns the
// error so cobra exits 1, for failures outside of qc.Analyze itself.
func writeError(err error) error {
	printError(err)
	return err
}

func writeReport(report *qc.Report, jsonOut string) error {
	fmt.Fprintf(os.Stderr, "%s overall status: %s (%d pass, %d warn, %d fail)\n",
		bold(report.Filename), statusColor(report.QualityStatus.Overall),
		report.QualityStatus.PassCount, report.QualityStatus.WarnCount, report.QualityStatus.FailCount)

	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	if jsonOut == "-" || jsonOut == "" {
		fmt.Println(string(payload))
		return nil
	}

	return os.WriteFile(jsonOut, payload, 0o644)
}
