package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/usecase/diff"
)

// WriteDiff prints a diff result. showCommon controls whether unchanged paths are listed
// in the pretty and markdown formats; JSON always carries all three lists.
func WriteDiff(w io.Writer, res domain.DiffResult, f Format, st Styles, showCommon bool) error {
	switch f {
	case FormatJSON:
		out, err := diff.Render(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, DiffMarkdown(res, showCommon))
		return err
	default:
		_, err := io.WriteString(w, diffPretty(res, st, showCommon))
		return err
	}
}

func diffPretty(res domain.DiffResult, st Styles, showCommon bool) string {
	var b strings.Builder

	b.WriteString(st.Title.Render("Schema diff"))
	b.WriteString("  ")
	b.WriteString(st.Faint.Render(diff.Summary(res)))
	b.WriteString("\n")

	for _, p := range res.Added {
		b.WriteString(st.Added.Render("+ " + p))
		b.WriteString("\n")
	}
	for _, p := range res.Removed {
		b.WriteString(st.Removed.Render("- " + p))
		b.WriteString("\n")
	}
	if showCommon {
		for _, p := range res.Common {
			b.WriteString(st.Common.Render("  " + p))
			b.WriteString("\n")
		}
	}
	if !res.HasDrift() {
		b.WriteString(st.Pass.Render("no drift"))
		b.WriteString("\n")
	}
	return b.String()
}

// DiffMarkdown renders the diff as a GitHub-flavored markdown section.
func DiffMarkdown(res domain.DiffResult, showCommon bool) string {
	var b strings.Builder
	b.WriteString("## Schema diff\n\n")
	fmt.Fprintf(&b, "%s\n\n", diff.Summary(res))

	section := func(title string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Fprintf(&b, "### %s\n\n", title)
		for _, p := range paths {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
		b.WriteString("\n")
	}

	section("Added", res.Added)
	section("Removed", res.Removed)
	if showCommon {
		section("Common", res.Common)
	}
	if !res.HasDrift() {
		b.WriteString("No drift.\n")
	}
	return b.String()
}
