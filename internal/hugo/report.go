package hugo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// ReportFileName is the machine readable report written into the output root.
const ReportFileName = "build-report.json"

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// ReportIssueCode enumerates machine-parseable issue identifiers.
// Codes are a stable contract and are only ever appended.
type ReportIssueCode string

const (
	IssueEmbedFailure      ReportIssueCode = "EMBED_FAILURE"
	IssueDuplicateFeature  ReportIssueCode = "DUPLICATE_FEATURE"
	IssueBrokenLink        ReportIssueCode = "BROKEN_LINK"
	IssueNoRepository      ReportIssueCode = "NO_GIT_REPOSITORY"
	IssueCanceled          ReportIssueCode = "BUILD_CANCELED"
	IssueGenericStageError ReportIssueCode = "GENERIC_STAGE_ERROR"
)

// IssueSeverity represents normalized severity levels.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// ReportIssue is a structured taxonomy entry describing a discrete problem.
type ReportIssue struct {
	Code     ReportIssueCode `json:"code"`
	Stage    StageName       `json:"stage"`
	Severity IssueSeverity   `json:"severity"`
	Message  string          `json:"message"`
}

// StageCount aggregates outcomes for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// FileRecord is one generated file and whether it was rewritten.
type FileRecord struct {
	Path   string                  `json:"path"`
	Result metrics.FileResultLabel `json:"result"`
}

// BuildReport captures what a generation run did.
type BuildReport struct {
	SchemaVersion   int
	BuildID         string
	Site            string
	Start           time.Time
	End             time.Time
	Errors          []error // fatal errors causing build abortion (at most one)
	Warnings        []error
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Files           []FileRecord
	FeatureCells    int
	EmbedFailed     bool
	LinksChecked    int
	BrokenLinks     int
	Outcome         BuildOutcome
	Issues          []ReportIssue
}

func newBuildReport(site string, start time.Time) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		BuildID:         uuid.NewString(),
		Site:            site,
		Start:           start,
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

// AddIssue appends a structured issue and mirrors err into Errors or
// Warnings based on severity. Provide err=nil for informational issues.
func (r *BuildReport) AddIssue(code ReportIssueCode, stage StageName, severity IssueSeverity, msg string, err error) {
	r.Issues = append(r.Issues, ReportIssue{Code: code, Stage: stage, Severity: severity, Message: msg})
	if err == nil {
		return
	}
	switch severity {
	case SeverityError:
		r.Errors = append(r.Errors, err)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, err)
	}
}

// recordStage updates counts and error slices for one stage result. se is
// nil on success.
func (r *BuildReport) recordStage(name StageName, se *StageError) {
	sc := r.StageCounts[name]
	if se == nil {
		sc.Success++
		r.StageCounts[name] = sc
		return
	}
	r.StageErrorKinds[name] = se.Kind
	switch se.Kind {
	case StageErrorWarning:
		sc.Warning++
		r.Warnings = append(r.Warnings, se)
	case StageErrorCanceled:
		sc.Canceled++
		r.AddIssue(IssueCanceled, name, SeverityError, se.Err.Error(), se)
	default:
		sc.Fatal++
		r.AddIssue(IssueGenericStageError, name, SeverityError, se.Err.Error(), se)
	}
	r.StageCounts[name] = sc
}

func (r *BuildReport) addFile(path string, result metrics.FileResultLabel) {
	r.Files = append(r.Files, FileRecord{Path: path, Result: result})
}

// FilesWith counts generated files with the given result.
func (r *BuildReport) FilesWith(result metrics.FileResultLabel) int {
	n := 0
	for _, f := range r.Files {
		if f.Result == result {
			n++
		}
	}
	return n
}

func (r *BuildReport) finish(end time.Time) {
	r.End = end
	r.deriveOutcome()
}

// deriveOutcome sets Outcome from recorded errors and warnings.
func (r *BuildReport) deriveOutcome() {
	for _, e := range r.Errors {
		var se *StageError
		if errors.As(e, &se) && se.Kind == StageErrorCanceled {
			r.Outcome = OutcomeCanceled
			return
		}
	}
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// OutcomeLabel maps the outcome onto its metrics label.
func (r *BuildReport) OutcomeLabel() metrics.BuildOutcomeLabel {
	return metrics.BuildOutcomeLabel(r.Outcome)
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("build=%s site=%q duration=%s files=%d written=%d skipped=%d cells=%d embed_failed=%t broken_links=%d errors=%d warnings=%d outcome=%s",
		r.BuildID, r.Site, r.End.Sub(r.Start).Truncate(time.Millisecond), len(r.Files),
		r.FilesWith(metrics.FileWritten), r.FilesWith(metrics.FileSkipped), r.FeatureCells,
		r.EmbedFailed, r.BrokenLinks, len(r.Errors), len(r.Warnings), r.Outcome)
}

// BuildReportSerializable is the JSON form of BuildReport.
type BuildReportSerializable struct {
	SchemaVersion   int                   `json:"schema_version"`
	BuildID         string                `json:"build_id"`
	Site            string                `json:"site"`
	Start           time.Time             `json:"start"`
	End             time.Time             `json:"end"`
	Outcome         BuildOutcome          `json:"outcome"`
	Errors          []string              `json:"errors"`
	Warnings        []string              `json:"warnings"`
	StageDurations  map[string]int64      `json:"stage_durations_ms"`
	StageErrorKinds map[string]string     `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount `json:"stage_counts"`
	Files           []FileRecord          `json:"files"`
	FeatureCells    int                   `json:"feature_cells"`
	EmbedFailed     bool                  `json:"embed_failed"`
	LinksChecked    int                   `json:"links_checked"`
	BrokenLinks     int                   `json:"broken_links"`
	Issues          []ReportIssue         `json:"issues"`
}

// Serializable converts the report into its JSON form. Maps and slices are
// never nil so the JSON shape is stable.
func (r *BuildReport) Serializable() BuildReportSerializable {
	s := BuildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		BuildID:         r.BuildID,
		Site:            r.Site,
		Start:           r.Start,
		End:             r.End,
		Outcome:         r.Outcome,
		Errors:          make([]string, 0, len(r.Errors)),
		Warnings:        make([]string, 0, len(r.Warnings)),
		StageDurations:  make(map[string]int64, len(r.StageDurations)),
		StageErrorKinds: make(map[string]string, len(r.StageErrorKinds)),
		StageCounts:     make(map[string]StageCount, len(r.StageCounts)),
		Files:           append([]FileRecord{}, r.Files...),
		FeatureCells:    r.FeatureCells,
		EmbedFailed:     r.EmbedFailed,
		LinksChecked:    r.LinksChecked,
		BrokenLinks:     r.BrokenLinks,
		Issues:          append([]ReportIssue{}, r.Issues...),
	}
	for _, e := range r.Errors {
		s.Errors = append(s.Errors, e.Error())
	}
	for _, w := range r.Warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	for k, v := range r.StageDurations {
		s.StageDurations[k] = v.Milliseconds()
	}
	for k, v := range r.StageErrorKinds {
		s.StageErrorKinds[string(k)] = string(v)
	}
	for k, v := range r.StageCounts {
		s.StageCounts[string(k)] = v
	}
	return s
}

// Persist writes build-report.json atomically into root.
func (r *BuildReport) Persist(root string) error {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return fmt.Errorf("ensure root for report: %w", err)
	}
	b, err := json.MarshalIndent(r.Serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	path := filepath.Join(root, ReportFileName)
	tmp := path + ".tmp"
	// #nosec G306 -- the report is a public build artifact
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename json: %w", err)
	}
	return nil
}
