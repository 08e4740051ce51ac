package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Absolentia/aif-core/internal/infra/fsworkspace"
	"github.com/Absolentia/aif-core/internal/infra/logger"
	"github.com/Absolentia/aif-core/internal/infra/workspacefinder"
	"github.com/Absolentia/aif-core/internal/ui/tui"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := newSession()
	if err := s.execute(ctx, newRoot(s)); err != nil {
		stop()
		os.Exit(exitCode(err))
	}
}

// session owns the log file opened for one invocation.
type session struct {
	setup   func(logger.Config) (func() error, error)
	cleanup func() error
}

func newSession() *session {
	return &session{setup: logger.Setup}
}

// execute runs the command and closes the log even when the command fails,
// since cobra skips post-run hooks on error.
func (s *session) execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if cerr := s.close(); err == nil {
		err = cerr
	}
	return err
}

func (s *session) close() error {
	c := s.cleanup
	s.cleanup = nil
	if c == nil {
		return nil
	}
	return c()
}

// errDrift is returned by `aif diff --fail-on-drift`.
var errDrift = errors.New("schema drift detected")

func exitCode(err error) int {
	if errors.Is(err, errDrift) {
		return 3
	}
	return 1
}

func newRootCmd() *cobra.Command {
	return newRoot(newSession())
}

func newRoot(s *session) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "aif",
		Short:        "aif: infer JSON Schemas from samples and track drift",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			root, inWorkspace := logRoot()
			if !inWorkspace && !debug {
				return nil
			}
			c, err := s.setup(logger.Config{Root: root, Debug: debug})
			if err == nil {
				s.cleanup = c
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return s.close()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			deps := tui.Deps{
				WorkspaceLocator:     newFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				OpenWorkspace:        openForTUI,
				Logger:               logger.For("tui"),
				Debug:                debug,
			}
			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .aif/logs/aif.log")

	cmd.AddCommand(
		inferCmd(),
		diffCmd(),
		schemasCmd(),
		initCmd(),
		doctorCmd(),
		versionCmd(),
		signoffCmd(),
		policyCmd(),
		watchCmd(),
	)
	return cmd
}

// logRoot is the workspace root when one is found, else the working directory.
func logRoot() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)

	if root, ferr := newFinder().FindRoot(wd); ferr == nil && root != "" {
		return root, true
	}
	return wd, false
}

func openForTUI(root string) (tui.Workspace, error) {
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return tui.Workspace{}, err
	}
	ws := newWorkspaceCtx(root, cfg, true)
	return tui.Workspace{Root: root, Store: ws.store}, nil
}
