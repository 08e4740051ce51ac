package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Absolentia/aif-core/internal/infra/gomod"
	"github.com/Absolentia/aif-core/internal/infra/logger"
	"github.com/Absolentia/aif-core/internal/infra/policyfile"
	"github.com/Absolentia/aif-core/internal/report"
	"github.com/Absolentia/aif-core/internal/usecase"
)

func policyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "policy",
		Short: "Dependency license and advisory gate",
	}
	c.AddCommand(policyCheckCmd())
	return c
}

func policyCheckCmd() *cobra.Command {
	var workspace string
	var policyPath string
	var gomodPath string
	var format string
	var render bool

	c := &cobra.Command{
		Use:   "check",
		Short: "Evaluate go.mod dependencies against aif-policy.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			ws, err := loadWorkspaceOrCwd(workspace)
			if err != nil {
				return err
			}
			if policyPath == "" {
				policyPath = ws.abs(ws.cfg.Policy.File)
			}
			if gomodPath == "" {
				gomodPath = ws.abs(ws.cfg.Policy.GoMod)
			}

			uc := usecase.NewCheckPolicy(policyfile.NewLoader(), gomod.NewSource(gomodPath))
			rep, checkErr := uc.Execute(policyPath)
			if checkErr != nil && rep.Checked == 0 && len(rep.Violations) == 0 {
				return checkErr
			}
			logger.For("policy").Info("policy.checked",
				"policy", policyPath,
				"checked", rep.Checked,
				"violations", len(rep.Violations),
			)

			out := cmd.OutOrStdout()
			if f == report.FormatMarkdown && render {
				md, err := report.RenderMarkdown(report.PolicyMarkdown(rep), 0)
				if err != nil {
					return err
				}
				fmt.Fprint(out, md)
			} else if err := report.WritePolicy(out, rep, f, stylesFor(cmd)); err != nil {
				return err
			}
			return checkErr
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&policyPath, "policy", "p", "", "Policy file (default from aif.yaml)")
	c.Flags().StringVar(&gomodPath, "gomod", "", "go.mod to read dependencies from (default from aif.yaml)")
	c.Flags().StringVarP(&format, "format", "f", "pretty", "Output format: pretty|json|markdown")
	c.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal")
	return c
}
