package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
)

func WritePolicy(w io.Writer, r domain.PolicyReport, f Format, st Styles) error {
	switch f {
	case FormatJSON:
		if r.Violations == nil {
			r.Violations = []domain.Violation{}
		}
		return writeJSON(w, r)
	case FormatMarkdown:
		_, err := io.WriteString(w, PolicyMarkdown(r))
		return err
	}

	var b strings.Builder
	if r.Passed() {
		fmt.Fprintf(&b, "%s %d dependencies checked\n", st.Pass.Render("PASS"), r.Checked)
	} else {
		fmt.Fprintf(&b, "%s %d violation(s) in %d dependencies\n", st.Fail.Render("FAIL"), len(r.Violations), r.Checked)
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "  - %s@%s [%s] %s\n", v.Module, v.Version, v.Kind, v.Detail)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func PolicyMarkdown(r domain.PolicyReport) string {
	var b strings.Builder
	b.WriteString("## Dependency policy\n\n")
	if r.Passed() {
		fmt.Fprintf(&b, "All %d dependencies pass.\n", r.Checked)
		return b.String()
	}

	fmt.Fprintf(&b, "%d violation(s) in %d dependencies.\n\n", len(r.Violations), r.Checked)
	b.WriteString("| Module | Version | Kind | Detail |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, v := range r.Violations {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", v.Module, v.Version, v.Kind, escapePipes(v.Detail))
	}
	return b.String()
}

func WriteSignoff(w io.Writer, results []domain.SignoffResult, f Format, st Styles) error {
	if f == FormatJSON {
		if results == nil {
			results = []domain.SignoffResult{}
		}
		return writeJSON(w, results)
	}

	failed := 0
	var b strings.Builder
	for _, r := range results {
		if r.Conforms {
			continue
		}
		failed++
		fmt.Fprintf(&b, "  - %s %s\n", shortHash(r.Hash), r.Subject)
	}

	head := fmt.Sprintf("%s %d commit(s) signed off\n", st.Pass.Render("PASS"), len(results))
	if failed > 0 {
		head = fmt.Sprintf("%s %d of %d commit(s) missing Signed-off-by\n", st.Fail.Render("FAIL"), failed, len(results))
	}
	_, err := io.WriteString(w, head+b.String())
	return err
}

func shortHash(h string) string {
	if h == "" {
		return "(message)"
	}
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
