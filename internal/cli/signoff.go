package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/infra/gitlog"
	"github.com/Absolentia/aif-core/internal/report"
	"github.com/Absolentia/aif-core/internal/usecase"
)

func signoffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "signoff",
		Short: "Developer Certificate of Origin checks",
	}
	c.AddCommand(signoffCheckCmd())
	return c
}

func signoffCheckCmd() *cobra.Command {
	var repo string
	var messageFile string
	var format string

	c := &cobra.Command{
		Use:   "check [revision-range]",
		Short: "Fail when a commit lacks a Signed-off-by trailer",
		Long: "Check commits in a revision range (e.g. origin/main..HEAD) or a single message\n" +
			"(--message-file, use - for stdin, handy in a commit-msg hook).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if messageFile != "" {
				msg, err := readMessage(cmd.InOrStdin(), messageFile)
				if err != nil {
					return err
				}
				res, checkErr := usecase.NewCheckSignoff(nil).CheckMessage(msg)
				if err := report.WriteSignoff(out, []domain.SignoffResult{res}, f, stylesFor(cmd)); err != nil {
					return err
				}
				return checkErr
			}

			dir := repo
			if strings.TrimSpace(dir) == "" {
				if root, err := resolveWorkspaceRoot(""); err == nil {
					dir = root
				} else {
					dir = "."
				}
			}

			rev := ""
			if len(args) == 1 {
				rev = args[0]
			}

			results, checkErr := usecase.NewCheckSignoff(gitlog.NewSource(dir)).Execute(cmd.Context(), rev)
			if results != nil {
				if err := report.WriteSignoff(out, results, f, stylesFor(cmd)); err != nil {
					return err
				}
			}
			return checkErr
		},
	}

	c.Flags().StringVar(&repo, "repo", "", "Git repository directory (default: workspace root or cwd)")
	c.Flags().StringVarP(&messageFile, "message-file", "m", "", "Check a single commit message file (- for stdin)")
	c.Flags().StringVarP(&format, "format", "f", "pretty", "Output format: pretty|json")
	return c
}

func readMessage(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.OpError{Op: "cli.signoff.read", Kind: domain.KindNotFound, Path: path, Err: err}
	}
	return string(b), nil
}
