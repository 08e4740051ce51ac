package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Absolentia/aif-core/internal/infra/logger"
	"github.com/Absolentia/aif-core/internal/infra/samplefs"
	"github.com/Absolentia/aif-core/internal/infra/watcher"
	"github.com/Absolentia/aif-core/internal/report"
	"github.com/Absolentia/aif-core/internal/usecase"
	"github.com/Absolentia/aif-core/internal/usecase/diff"
)

func watchCmd() *cobra.Command {
	var workspace string
	var root string
	var debounce time.Duration

	c := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-infer on sample changes and print schema drift",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOrCwd(workspace)
			if err != nil {
				return err
			}

			dir := filepath.Join(ws.root, ws.cfg.Paths.SamplesDir)
			if len(args) == 1 {
				dir = resolveArgPath(args[0])
			}
			if !cmd.Flags().Changed("root") {
				root = ws.cfg.Infer.Root
			}

			log := logger.For("watch")
			w := watcher.New(
				watcher.WithDebounce(debounce),
				watcher.WithFilter(samplefs.Supported),
				watcher.WithLogger(log),
			)
			uc := usecase.NewWatchSamples(ws.samples, w, log)

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			st := stylesFor(cmd)

			fmt.Fprintf(errOut, "watching %s (Ctrl-C to stop)\n", dir)
			return uc.Execute(cmd.Context(), dir, root, ws.cfg.Infer.Workers, func(u usecase.WatchUpdate) {
				switch {
				case u.Err != nil:
					fmt.Fprintf(errOut, "re-infer failed: %v\n", u.Err)
				case u.Changed == nil:
					fmt.Fprintf(out, "baseline: %d samples\n", u.SampleCount)
				case u.Diff.HasDrift():
					_ = report.WriteDiff(out, u.Diff, report.FormatPretty, st, false)
				default:
					fmt.Fprintf(out, "no drift (%s)\n", diff.Summary(u.Diff))
				}
			})
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&root, "root", "r", "", "JSONPath selecting the document root in each sample")
	c.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before re-inferring")
	return c
}
