package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Absolentia/aif-core/internal/infra/logger"
	"github.com/Absolentia/aif-core/pkg/aifcore"
)

func doctorCmd() *cobra.Command {
	var verbose bool

	c := &cobra.Command{
		Use:   "doctor",
		Short: "Run the library self-check (prints import-ok)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := aifcore.ImportCheck()
			if err != nil {
				logger.For("doctor").Error("doctor.failed", "err", err)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, msg)
			if !verbose {
				return nil
			}

			fmt.Fprintf(out, "version:   %s\n", aifcore.Version())
			if root, err := resolveWorkspaceRoot(""); err == nil {
				fmt.Fprintf(out, "workspace: %s\n", root)
			} else {
				fmt.Fprintln(out, "workspace: (none)")
			}
			if err := logger.IsReady(); err == nil {
				fmt.Fprintf(out, "log:       %s (opened %s)\n", logger.Path(), logger.InitTime().Format(time.RFC3339))
			}
			return nil
		},
	}

	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print version, workspace and log file")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), aifcore.Version())
		},
	}
}
