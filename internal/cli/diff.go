package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Absolentia/aif-core/internal/report"
	"github.com/Absolentia/aif-core/internal/usecase"
)

func diffCmd() *cobra.Command {
	var workspace string
	var format string
	var showCommon bool
	var render bool
	var failOnDrift bool

	c := &cobra.Command{
		Use:   "diff <schema-a> <schema-b>",
		Short: "Compare two schemas by property path",
		Long: "Compare two JSON Schemas. Each argument may be a stored schema id, a file name\n" +
			"inside the schema store, or a path. Added paths exist only in B, removed only in A.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			ws, err := loadWorkspaceOrCwd(workspace)
			if err != nil {
				return err
			}

			res, err := usecase.NewDiffSchemas(ws.store, nil).Execute(resolveSchemaArg(args[0]), resolveSchemaArg(args[1]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f == report.FormatMarkdown && render {
				md, err := report.RenderMarkdown(report.DiffMarkdown(res, showCommon), 0)
				if err != nil {
					return err
				}
				fmt.Fprint(out, md)
			} else if err := report.WriteDiff(out, res, f, stylesFor(cmd), showCommon); err != nil {
				return err
			}

			if failOnDrift && res.HasDrift() {
				return errDrift
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&format, "format", "f", "json", "Output format: json|pretty|markdown")
	c.Flags().BoolVar(&showCommon, "common", false, "List unchanged paths in pretty/markdown output")
	c.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal")
	c.Flags().BoolVar(&failOnDrift, "fail-on-drift", false, "Exit non-zero when paths were added or removed")
	return c
}

// resolveSchemaArg turns existing relative files into absolute paths; anything else is
// handed to the store as an id.
func resolveSchemaArg(arg string) string {
	if fileExists(arg) {
		return resolveArgPath(arg)
	}
	return arg
}

func stylesFor(cmd *cobra.Command) report.Styles {
	if isTerminal(cmd.OutOrStdout()) {
		return report.DefaultStyles()
	}
	return report.PlainStyles()
}
