package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/sitemigrate/internal/migrate"
	"git.home.luguber.info/inful/sitemigrate/internal/rewrite"
	"git.home.luguber.info/inful/sitemigrate/internal/verify"
)

func samplePlan() *migrate.Plan {
	return &migrate.Plan{
		Dir: "/srv/site",
		Pages: []migrate.PagePlan{
			{
				Page:   config.Page{File: "about.html", Folder: "about"},
				Status: migrate.StatusMigrate,
				Source: "about.html",
				Target: "about/index.html",
				Rewrite: rewrite.Result{
					Changes: []rewrite.LinkChange{
						{Kind: rewrite.KindResource, From: "styles.css", To: "../styles.css"},
						{Kind: rewrite.KindLegacy, From: "about.html", To: "../about/"},
					},
					ActiveMarks: 1,
				},
			},
			{
				Page:   config.Page{File: "team.html", Folder: "team"},
				Status: migrate.StatusSkipped,
				Source: "team.html",
				Target: "team/index.html",
			},
		},
		Root: migrate.PagePlan{
			Page:   config.Page{File: "index.html"},
			Status: migrate.StatusRewrite,
			Source: "index.html",
			Target: "index.html",
			Rewrite: rewrite.Result{
				Changes: []rewrite.LinkChange{{Kind: rewrite.KindLegacy, From: "about.html", To: "about/"}},
			},
		},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, samplePlan()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "Migration plan for /srv/site", lines[0])
	require.Contains(t, lines[1], "about.html")
	require.Contains(t, lines[1], "about/index.html")
	require.Contains(t, lines[1], "migrate, 2 link(s), 1 active")
	require.Contains(t, lines[2], "team.html")
	require.Contains(t, lines[2], "skipped (not found)")
	require.NotContains(t, lines[2], "team/index.html")
	require.Contains(t, lines[3], "rewrite in place, 1 link(s)")
	require.Equal(t, "1 to migrate, 1 skipped", lines[4])
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, samplePlan()))

	out := buf.String()
	require.Contains(t, out, "# Site migration plan")
	require.Contains(t, out, "## Pages")
	require.Contains(t, out, "`/srv/site`")
	require.Contains(t, out, "about/index.html")
	require.Contains(t, out, "skipped")
	require.Contains(t, out, "will be skipped")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, FormatHTML, samplePlan()))

	out := buf.String()
	require.Contains(t, out, "<h1")
	require.Contains(t, out, "Site migration plan")
	require.Contains(t, out, "<table>")
	require.Contains(t, out, "<code>about.html</code>")
	require.Contains(t, out, "about/index.html")
}

func TestWritePlan(t *testing.T) {
	var text, md bytes.Buffer
	require.NoError(t, WritePlan(&text, FormatText, samplePlan()))
	require.NoError(t, WritePlan(&md, FormatMarkdown, samplePlan()))
	require.NotEqual(t, text.String(), md.String())

	err := WritePlan(&bytes.Buffer{}, Format("json"), samplePlan())
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestVerification(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Verification(&buf, &verify.Report{
		Documents: []string{"index.html", "blog/index.html"},
		Findings: []verify.Finding{
			{Document: "blog/index.html", Tag: "a", Attr: "href", Value: "privacy.html", Page: "privacy.html"},
		},
	}))

	out := buf.String()
	require.Contains(t, out, `<a href="privacy.html">`)
	require.Contains(t, out, "still references privacy.html")
	require.Contains(t, out, "2 document(s) checked, 1 stale reference(s)")
}
