package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
)

const (
	indexHTML = `<html><head><link rel="stylesheet" href="styles.css"></head>
<body><a href="index.html">Home</a><a href="about.html">About</a><a href="team.html#coaches">Team</a></body></html>`
	aboutHTML = `<html><head><link rel="stylesheet" href="styles.css"></head>
<body><a href="index.html#top">Home</a><a href="about.html">About</a><a href="team.html">Team</a></body></html>`
	teamHTML = `<html><body><a href="about.html">About</a><a href="team.html">Team</a></body></html>`
)

// runCLI parses args against a fresh CLI and runs the selected command.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("sitemigrate"),
		kong.Vars{"version": "test"},
		kong.Exit(func(code int) { t.Fatalf("unexpected exit with code %d", code) }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	global := &Global{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stdout: &out,
	}
	err = kctx.Run(global, &cli)
	return out.String(), err
}

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test fixture
	require.NoError(t, err)
	return string(data)
}

func TestMigrate_DefaultCommand(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html": indexHTML,
		"about.html": aboutHTML,
		"team.html":  teamHTML,
	})

	out, err := runCLI(t, "--dir", dir)
	require.NoError(t, err)
	require.Empty(t, out)

	require.NoFileExists(t, filepath.Join(dir, "about.html"))
	require.NoFileExists(t, filepath.Join(dir, "team.html"))

	about := readFile(t, filepath.Join(dir, "about", "index.html"))
	require.Contains(t, about, `href="../styles.css"`)
	require.Contains(t, about, `<a href="../#top">Home</a>`)
	require.Contains(t, about, `<a href="../about/" class="active">About</a>`)
	require.Contains(t, about, `<a href="../team/">Team</a>`)

	index := readFile(t, filepath.Join(dir, "index.html"))
	require.Contains(t, index, `<a href="./">Home</a>`)
	require.Contains(t, index, `<a href="about/">About</a>`)
	require.Contains(t, index, `<a href="team/#coaches">Team</a>`)
	require.Contains(t, index, `href="styles.css"`)
}

func TestMigrate_DryRunLeavesSiteUntouched(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html": indexHTML,
		"about.html": aboutHTML,
	})

	out, err := runCLI(t, "--dir", dir, "migrate", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "Migration plan for "+dir)
	require.Contains(t, out, "skipped (not found)")
	require.Contains(t, out, "1 to migrate, 6 skipped")

	require.FileExists(t, filepath.Join(dir, "about.html"))
	require.NoDirExists(t, filepath.Join(dir, "about"))
	require.Equal(t, indexHTML, readFile(t, filepath.Join(dir, "index.html")))
}

func TestMigrate_ReportsUnrecognizedReferences(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html": indexHTML,
		"about.html": `<a href='team.html'>Team</a>`,
	})

	out, err := runCLI(t, "--dir", dir, "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "still references team.html")
	require.Contains(t, out, "1 stale reference(s)")

	out, err = runCLI(t, "--dir", dir, "migrate", "--no-verify")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMigrate_MissingRootPage(t *testing.T) {
	dir := writeSite(t, map[string]string{"about.html": aboutHTML})

	_, err := runCLI(t, "--dir", dir)
	require.Error(t, err)
	require.Equal(t, 11, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestMigrate_WithConfigFile(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html": `<a href="news.html">News</a>`,
		"news.html":  `<a href="news.html">News</a><a href="about.html">About</a>`,
		"about.html": aboutHTML,
	})
	cfgPath := filepath.Join(t.TempDir(), "sitemigrate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dir: "+dir+"\npages:\n  - file: news.html\n    folder: updates\n"), 0o600))

	_, err := runCLI(t, "--config", cfgPath)
	require.NoError(t, err)

	require.Equal(t, `<a href="../updates/" class="active">News</a><a href="about.html">About</a>`,
		readFile(t, filepath.Join(dir, "updates", "index.html")))
	require.Equal(t, `<a href="updates/">News</a>`, readFile(t, filepath.Join(dir, "index.html")))
	require.FileExists(t, filepath.Join(dir, "about.html"))
}

func TestMigrate_DirFlagOverridesConfigFile(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": indexHTML, "team.html": teamHTML})
	cfgPath := filepath.Join(t.TempDir(), "sitemigrate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dir: /does/not/exist\npages:\n  - file: team.html\n    folder: crew\n"), 0o600))

	_, err := runCLI(t, "--config", cfgPath, "--dir", dir)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "crew", "index.html"))
}

func TestMigrate_InvalidConfig(t *testing.T) {
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestPlan_Markdown(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html": indexHTML,
		"about.html": aboutHTML,
		"team.html":  teamHTML,
	})

	out, err := runCLI(t, "--dir", dir, "plan", "--format", "markdown")
	require.NoError(t, err)
	require.Contains(t, out, "# Site migration plan")
	require.Contains(t, out, "`about.html`")
	require.Contains(t, out, "about/index.html")

	require.FileExists(t, filepath.Join(dir, "about.html"))
}

func TestPlan_RejectsUnknownFormat(t *testing.T) {
	_, err := runCLI(t, "plan", "--format", "json")
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html":       `<a href="about/">About</a>`,
		"about/index.html": `<a href="../about/">About</a><a href="team.html#x">Team</a>`,
	})

	out, err := runCLI(t, "--dir", dir, "verify")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryVerify))
	require.Contains(t, out, "about/index.html")
	require.Contains(t, out, "still references team.html")
	require.Contains(t, out, "2 document(s) checked, 1 stale reference(s)")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "about", "index.html"), []byte(`<a href="../team/#x">Team</a>`), 0o600))
	out, err = runCLI(t, "--dir", dir, "verify")
	require.NoError(t, err)
	require.Contains(t, out, "0 stale reference(s)")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemigrate.yaml")

	out, err := runCLI(t, "--config", path, "init")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote page mapping to "+path)
	require.Contains(t, readFile(t, path), "blog-details.html")

	_, err = runCLI(t, "--config", path, "init")
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = runCLI(t, "--config", path, "init", "--force")
	require.NoError(t, err)
}

func TestMigrate_WritesMetricsFile(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html": indexHTML,
		"about.html": aboutHTML,
	})
	metricsPath := filepath.Join(t.TempDir(), "sitemigrate.prom")

	_, err := runCLI(t, "--dir", dir, "migrate", "--metrics-file", metricsPath)
	require.NoError(t, err)

	got := readFile(t, metricsPath)
	require.Contains(t, got, `sitemigrate_page_results_total{result="migrated"} 1`)
	require.Contains(t, got, `sitemigrate_page_results_total{result="skipped"} 6`)
	require.Contains(t, got, `sitemigrate_run_outcomes_total{outcome="success"} 1`)
	require.Contains(t, got, "sitemigrate_stale_references 0")
}

func TestMigrate_MetricsFileRecordsFailure(t *testing.T) {
	dir := writeSite(t, map[string]string{"about.html": aboutHTML})
	metricsPath := filepath.Join(t.TempDir(), "sitemigrate.prom")

	_, err := runCLI(t, "--dir", dir, "migrate", "--metrics-file", metricsPath)
	require.Error(t, err)
	require.Contains(t, readFile(t, metricsPath), `sitemigrate_run_outcomes_total{outcome="failed"} 1`)
}
