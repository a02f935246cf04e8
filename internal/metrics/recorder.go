package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of a build.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeWarning  BuildOutcomeLabel = "warning"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// FileResultLabel tells whether an output file was rewritten.
type FileResultLabel string

const (
	FileWritten FileResultLabel = "written"
	FileSkipped FileResultLabel = "skipped"
)

// Recorder defines observability hooks for build, stage and composition
// metrics. Implementations must tolerate being called from concurrent
// composers.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	IncEmbedFailure(region string)
	ObserveFeatureCells(n int)
	IncBrokenLinks(policy string, n int)
	IncFileResult(result FileResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) IncEmbedFailure(string)                     {}
func (NoopRecorder) ObserveFeatureCells(int)                    {}
func (NoopRecorder) IncBrokenLinks(string, int)                 {}
func (NoopRecorder) IncFileResult(FileResultLabel)              {}
