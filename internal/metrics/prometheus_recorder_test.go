package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObservePhaseDuration(PhasePlan, 150*time.Millisecond)
	pr.IncPageResult(PageMigrated)
	pr.IncPageResult(PageMigrated)
	pr.IncPageResult(PageSkipped)
	pr.AddLinkRewrites("legacy", 3)
	pr.AddLinkRewrites("root", 0)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.SetStaleReferences(2)

	require.InDelta(t, 2, testutil.ToFloat64(pr.pageResults.WithLabelValues(string(PageMigrated))), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.pageResults.WithLabelValues(string(PageSkipped))), 0)
	require.InDelta(t, 3, testutil.ToFloat64(pr.linkRewrites.WithLabelValues("legacy")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(pr.staleReferences), 0)
	require.Positive(t, testutil.ToFloat64(pr.lastRun))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObservePhaseDuration(PhaseApply, time.Second)
		pr.IncPageResult(PageFailed)
		pr.AddLinkRewrites("legacy", 1)
		pr.IncRunOutcome(OutcomeFailed)
		pr.SetStaleReferences(1)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncPageResult(PageMigrated)
	pr.IncRunOutcome(OutcomeDryRun)

	path := filepath.Join(t.TempDir(), "sitemigrate.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path) // #nosec G304 -- test output
	require.NoError(t, err)
	require.Contains(t, string(data), `sitemigrate_page_results_total{result="migrated"} 1`)
	require.Contains(t, string(data), `sitemigrate_run_outcomes_total{outcome="dry_run"} 1`)
}

func TestWriteTextfile_MissingDirectory(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "absent", "x.prom"), prom.NewRegistry())
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}
