package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Absolentia/aif-core/internal/infra/fsworkspace"
	"github.com/Absolentia/aif-core/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create an aif workspace (aif.yaml, samples/, schemas/, sets/)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			res, err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(root, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized aif workspace in %s\n", res.Root)
			for _, f := range res.Written {
				fmt.Fprintf(out, "  wrote %s\n", f)
			}
			for _, f := range res.Kept {
				fmt.Fprintf(out, "  kept  %s (use --force to overwrite)\n", f)
			}
			if res.GitignoreUpdated {
				fmt.Fprintln(out, "  updated .gitignore")
			}
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}
