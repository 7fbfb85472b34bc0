// Package report renders migration plans and verification results for humans.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/nao1215/markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/sitemigrate/internal/migrate"
	"git.home.luguber.info/inful/sitemigrate/internal/rewrite"
	"git.home.luguber.info/inful/sitemigrate/internal/verify"
)

// Format selects the plan rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// WritePlan renders plan in the requested format.
func WritePlan(w io.Writer, format Format, plan *migrate.Plan) error {
	switch format {
	case FormatText, "":
		return Text(w, plan)
	case FormatMarkdown:
		return Markdown(w, plan)
	case FormatHTML:
		return HTML(w, plan)
	default:
		return errors.ValidationError("unknown report format").WithContext("format", string(format)).Build()
	}
}

// Text writes an aligned plain-text summary of plan.
func Text(w io.Writer, plan *migrate.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "Migration plan for %s\n", plan.Dir)
	for _, pp := range allPages(plan) {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\n", pp.Source, targetColumn(pp), statusColumn(pp))
	}
	_, _ = fmt.Fprintf(tw, "%d to migrate, %d skipped\n", plan.Count(migrate.StatusMigrate), plan.Count(migrate.StatusSkipped))

	return tw.Flush()
}

// Markdown writes plan as a markdown document.
func Markdown(w io.Writer, plan *migrate.Plan) error {
	md := markdown.NewMarkdown(w)

	md.H1("Site migration plan")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Working directory", "`" + plan.Dir + "`"},
			{"Pages to migrate", strconv.Itoa(plan.Count(migrate.StatusMigrate))},
			{"Pages skipped", strconv.Itoa(plan.Count(migrate.StatusSkipped))},
		},
	})
	md.PlainText("")

	md.H2("Pages")
	md.PlainText("")

	rows := make([][]string, 0, len(plan.Pages)+1)
	for _, pp := range allPages(plan) {
		rows = append(rows, []string{
			"`" + pp.Source + "`",
			targetColumn(pp),
			string(pp.Status),
			strconv.Itoa(pp.Rewrite.Count(rewrite.KindResource)),
			strconv.Itoa(pp.Rewrite.Count(rewrite.KindLegacy) + pp.Rewrite.Count(rewrite.KindRoot)),
			strconv.Itoa(pp.Rewrite.ActiveMarks),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Target", "Status", "Resources", "Links", "Active"},
		Rows:   rows,
	})
	md.PlainText("")

	if skipped := plan.Count(migrate.StatusSkipped); skipped > 0 {
		md.Note(strconv.Itoa(skipped) + " mapped page(s) were not found and will be skipped.")
	} else {
		md.Tip("Every mapped page was found.")
	}

	return md.Build()
}

// HTML renders the markdown report as an HTML fragment.
func HTML(w io.Writer, plan *migrate.Plan) error {
	var src bytes.Buffer
	if err := Markdown(&src, plan); err != nil {
		return err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(src.Bytes(), w); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render HTML report").Build()
	}
	return nil
}

// Verification writes the findings of a verify run, one per line.
func Verification(w io.Writer, r *verify.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range r.Findings {
		_, _ = fmt.Fprintf(tw, "%s\t<%s %s=%q>\tstill references %s\n", f.Document, f.Tag, f.Attr, f.Value, f.Page)
	}
	_, _ = fmt.Fprintf(tw, "%d document(s) checked, %d stale reference(s)\n", len(r.Documents), len(r.Findings))
	return tw.Flush()
}

func allPages(plan *migrate.Plan) []migrate.PagePlan {
	pages := make([]migrate.PagePlan, 0, len(plan.Pages)+1)
	pages = append(pages, plan.Pages...)
	return append(pages, plan.Root)
}

func targetColumn(pp migrate.PagePlan) string {
	if pp.Status == migrate.StatusSkipped {
		return "-"
	}
	return pp.Target
}

func statusColumn(pp migrate.PagePlan) string {
	switch pp.Status {
	case migrate.StatusSkipped:
		return "skipped (not found)"
	case migrate.StatusRewrite:
		return fmt.Sprintf("rewrite in place, %d link(s)", len(pp.Rewrite.Changes))
	default:
		return fmt.Sprintf("migrate, %d link(s), %d active", len(pp.Rewrite.Changes), pp.Rewrite.ActiveMarks)
	}
}
