package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Absolentia/aif-core/internal/infra/logger"
	"github.com/Absolentia/aif-core/internal/usecase"
)

func inferCmd() *cobra.Command {
	var workspace string
	var set string
	var urls []string
	var root string
	var workers int
	var save bool
	var name string
	var output string

	c := &cobra.Command{
		Use:   "infer [files or dirs...]",
		Short: "Infer a JSON Schema from sample documents",
		Long: "Infer a draft 2020-12 JSON Schema from .json, .jsonl/.ndjson and .yaml samples,\n" +
			"a sample set (--set) or remote JSON (--url). Prints the schema unless -o is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOrCwd(workspace)
			if err != nil {
				return err
			}
			if save && !ws.found {
				return fmt.Errorf("--save needs a workspace (tip: run `aif init`)")
			}

			req := usecase.InferRequest{
				BaseDir:     ws.root,
				URLs:        urls,
				DefaultRoot: ws.cfg.Infer.Root,
				Workers:     ws.cfg.Infer.Workers,
				Save:        save,
				Name:        name,
			}
			if cmd.Flags().Changed("root") {
				req.Root = root
			}
			if cmd.Flags().Changed("workers") {
				req.Workers = workers
			}

			for _, a := range args {
				req.Paths = append(req.Paths, resolveArgPath(a))
			}
			if strings.TrimSpace(set) != "" {
				p, err := resolveSetPath(ws, set)
				if err != nil {
					return err
				}
				req.SetRef = p
			}
			if len(req.Paths) == 0 && req.SetRef == "" && len(req.URLs) == 0 && ws.found {
				req.Paths = []string{filepath.Join(ws.root, ws.cfg.Paths.SamplesDir)}
			}

			uc := usecase.NewInferSchema(ws.samples, ws.sets, ws.fetcher, ws.store,
				usecase.WithInferLogger(logger.For("infer")))
			res, err := uc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				if err := os.WriteFile(output, []byte(res.Schema+"\n"), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d samples)\n", output, res.SampleCount)
			} else {
				fmt.Fprintln(out, res.Schema)
			}
			if res.SavedID != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "saved schema %s\n", res.SavedID)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&set, "set", "s", "", "Sample set name or path")
	c.Flags().StringSliceVarP(&urls, "url", "u", nil, "Fetch a JSON sample over HTTP GET (repeatable)")
	c.Flags().StringVarP(&root, "root", "r", "", "JSONPath selecting the document root in each sample (e.g. $.data)")
	c.Flags().IntVarP(&workers, "workers", "j", 0, "Parallel workers (default from aif.yaml)")
	c.Flags().BoolVar(&save, "save", false, "Save the schema into the workspace schema store")
	c.Flags().StringVarP(&name, "name", "n", "", "Name for the saved schema (defaults to set or file name)")
	c.Flags().StringVarP(&output, "output", "o", "", "Write the schema to a file instead of stdout")
	return c
}

// resolveArgPath keeps positional paths relative to the caller's working directory.
func resolveArgPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
