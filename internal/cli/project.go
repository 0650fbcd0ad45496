package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fastqscope/internal/store"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects in the persistence store",
	}
	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectRmCmd())
	return cmd
}

func newProjectCreateCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return writeStoreError(fmt.Errorf("--name is required"))
			}
			s, err := store.Open(dbFile)
			if err != nil {
				return writeStoreError(err)
			}
			defer s.Close()

			p, err := s.CreateProject(name)
			if err != nil {
				return writeStoreError(err)
			}
			return writeStoreSuccess(p)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	return cmd
}

func newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects and their samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(dbFile)
			if err != nil {
				return writeStoreError(err)
			}
			defer s.Close()

			projects, err := s.ListProjects()
			if err != nil {
				return writeStoreError(err)
			}
			return writeStoreSuccess(projects)
		},
	}
}

func newProjectRmCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a project and its samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(dbFile)
			if err != nil {
				return writeStoreError(err)
			}
			defer s.Close()

			if err := s.DeleteProject(id); err != nil {
				return writeStoreError(err)
			}
			return writeStoreMessage(fmt.Sprintf("Project %d deleted", id))
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "project id")
	return cmd
}

// writeStoreSuccess prints {"status":"success","data":<v>}, matching
// the persistence shell's documented envelope.
func writeStoreSuccess(v interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{"status": "success", "data": v})
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

// writeStoreMessage prints {"status":"success","message":"<msg>"}.
func writeStoreMessage(msg string) error {
	payload, _ := json.Marshal(map[string]string{"status": "success", "message": msg})
	fmt.Println(string(payload))
	return nil
}

// writeStoreError prints {"status":"error","message":"<err>"} and
// returns err so cobra exits nonzero.
func writeStoreError(err error) error {
	fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
	payload, _ := json.Marshal(map[string]string{"status": "error", "message": err.Error()})
	fmt.Println(string(payload))
	return err
}
