package metrics

import "time"

// Phase names a timed step of a migration run.
type Phase string

const (
	PhasePlan   Phase = "plan"
	PhaseApply  Phase = "apply"
	PhaseVerify Phase = "verify"
)

// PageResult enumerates per-page outcomes for counters.
type PageResult string

const (
	PageMigrated PageResult = "migrated"
	PageSkipped  PageResult = "skipped"
	PageFailed   PageResult = "failed"
)

// Outcome enumerates final run states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeDryRun   Outcome = "dry_run"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder defines observability hooks for a migration run.
type Recorder interface {
	ObservePhaseDuration(phase Phase, d time.Duration)
	IncPageResult(result PageResult)
	AddLinkRewrites(kind string, n int)
	IncRunOutcome(outcome Outcome)
	SetStaleReferences(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePhaseDuration(Phase, time.Duration) {}
func (NoopRecorder) IncPageResult(PageResult)                  {}
func (NoopRecorder) AddLinkRewrites(string, int)               {}
func (NoopRecorder) IncRunOutcome(Outcome)                     {}
func (NoopRecorder) SetStaleReferences(int)                    {}
