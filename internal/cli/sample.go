package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fastqscope/internal/store"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Manage samples attached to a project",
	}
	cmd.AddCommand(newSampleAddCmd())
	cmd.AddCommand(newSampleRmCmd())
	return cmd
}

func newSampleAddCmd() *cobra.Command {
	var (
		projectID  int64
		filePath   string
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Attach a FASTQ sample (and optional analysis report) to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == 0 || filePath == "" {
				return writeStoreError(fmt.Errorf("--project and --file are required"))
			}

			var results json.RawMessage
			if reportPath != "" {
				raw, err := os.ReadFile(reportPath)
				if err != nil {
					return writeStoreError(err)
				}
				results = json.RawMessage(raw)
			}

			s, err := store.Open(dbFile)
			if err != nil {
				return writeStoreError(err)
			}
			defer s.Close()

			sample, err := s.AddSample(projectID, filepath.Base(filePath), filePath, results)
			if err != nil {
				return writeStoreError(err)
			}
			return writeStoreSuccess(sample)
		},
	}
	cmd.Flags().Int64Var(&projectID, "project", 0, "project id")
	cmd.Flags().StringVar(&filePath, "file", "", "path to the FASTQ file")
	cmd.Flags().StringVar(&reportPath, "report", "", "path to a previously generated JSON report")
	return cmd
}

func newSampleRmCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(dbFile)
			if err != nil {
				return writeStoreError(err)
			}
			defer s.Close()

			if err := s.DeleteSample(id); err != nil {
				return writeStoreError(err)
			}
			return writeStoreMessage(fmt.Sprintf("Sample %d deleted", id))
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "sample id")
	return cmd
}
