package metrics

import "time"

// testRecorder counts calls; it backs the interface conformance check below.
type testRecorder struct {
	phases   map[Phase]int
	pages    map[PageResult]int
	links    map[string]int
	outcomes map[Outcome]int
	stale    int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		phases:   map[Phase]int{},
		pages:    map[PageResult]int{},
		links:    map[string]int{},
		outcomes: map[Outcome]int{},
	}
}

func (t *testRecorder) ObservePhaseDuration(phase Phase, _ time.Duration) { t.phases[phase]++ }
func (t *testRecorder) IncPageResult(result PageResult)                  { t.pages[result]++ }
func (t *testRecorder) AddLinkRewrites(kind string, n int)               { t.links[kind] += n }
func (t *testRecorder) IncRunOutcome(outcome Outcome)                    { t.outcomes[outcome]++ }
func (t *testRecorder) SetStaleReferences(n int)                         { t.stale = n }

var (
	_ Recorder = newTestRecorder()
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
