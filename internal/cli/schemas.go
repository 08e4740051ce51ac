package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func schemasCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "schemas",
		Short: "Manage stored schemas in a workspace",
	}

	c.AddCommand(schemasListCmd(), schemasShowCmd())
	return c
}

func schemasListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored schemas (oldest first)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			refs, err := ws.store.ListSchemas()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no schemas stored)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Fprintf(out, "- %s  %s  (%s)\n", r.ID, r.Name, rel)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func schemasShowCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			s, err := ws.store.LoadSchema(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}
