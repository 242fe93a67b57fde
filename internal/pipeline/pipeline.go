// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences one update run: fetch, transform, verify,
// persist, report, notify. A run is synchronous and single-flight; the
// caller guarantees at most one run at a time.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/votersspeak/congress-sync/internal/backup"
	"github.com/votersspeak/congress-sync/internal/dataset"
	"github.com/votersspeak/congress-sync/internal/diff"
	"github.com/votersspeak/congress-sync/internal/fetch"
	"github.com/votersspeak/congress-sync/internal/history"
	"github.com/votersspeak/congress-sync/internal/notify"
	"github.com/votersspeak/congress-sync/internal/report"
	"github.com/votersspeak/congress-sync/internal/transform"
	"github.com/votersspeak/congress-sync/pkg/types"
)

// State names one phase of a run.
type State string

const (
	StateFetching     State = "FETCHING"
	StateTransforming State = "TRANSFORMING"
	StateVerifying    State = "VERIFYING"
	StateRejected     State = "REJECTED"
	StatePersisting   State = "PERSISTING"
	StateReporting    State = "REPORTING"
	StateDone         State = "DONE"
	StateFailed       State = "FAILED"
)

// FailKind classifies where a run failed.
type FailKind string

const (
	FailFetch        FailKind = "fetch"
	FailParse        FailKind = "parse"
	FailVerification FailKind = "verification"
	FailPersistence  FailKind = "persistence"
	FailReport       FailKind = "report"
)

// RunError is a terminal run failure with its classification.
type RunError struct {
	Kind FailKind
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Result describes one completed (or failed) run.
type Result struct {
	RunID      string
	State      State
	Dataset    types.Dataset
	Diff       types.DiffResult
	Validation types.ValidationResult
	Report     report.Report
	StartedAt  time.Time
	FinishedAt time.Time
}

// Orchestrator wires the pipeline stages together. Construct with New and
// reuse across runs.
type Orchestrator struct {
	cfg     types.PipelineConfig
	fetcher *fetch.Fetcher
	store   *dataset.Store
	rotator *backup.Rotator
	reports *report.Builder
	mailer  *notify.Mailer
	runs    *history.Store

	out   io.Writer
	now   func() time.Time
	newID func() string
}

// New builds an orchestrator from config. The history store is optional;
// nil disables run recording. Progress lines go to out.
func New(cfg types.PipelineConfig, runs *history.Store, out io.Writer) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		fetcher: fetch.NewFetcher(cfg.Fetch, out),
		store:   dataset.NewStore(cfg.DataFile),
		rotator: backup.NewRotator(cfg.Backup),
		reports: report.NewBuilder(cfg.Report),
		mailer:  notify.NewMailer(cfg.Notify, out),
		runs:    runs,
		out:     out,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Run executes one update. The returned Result is populated as far as the
// run got; err is nil only for state DONE.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	result := Result{
		RunID:     o.newID(),
		StartedAt: o.now(),
	}

	fail := func(kind FailKind, err error) (Result, error) {
		runErr := &RunError{Kind: kind, Err: err}
		result.State = StateFailed
		if kind == FailVerification {
			result.State = StateRejected
		}
		// A failed run still leaves a report behind when the failure came
		// after fetch produced something worth describing.
		if kind != FailReport {
			o.writeFailureReport(&result, runErr)
		}
		result.FinishedAt = o.now()
		o.record(ctx, result, runErr)
		return result, runErr
	}

	o.setState(ctx, &result, StateFetching)
	files, err := o.fetcher.FetchAll(ctx)
	if err != nil {
		return fail(FailFetch, err)
	}

	o.setState(ctx, &result, StateTransforming)
	ds, validation, err := o.transformStage(files)
	if err != nil {
		return fail(FailParse, err)
	}
	result.Dataset = ds
	result.Validation = validation

	o.setState(ctx, &result, StateVerifying)
	old := o.loadPrior(&result)
	result.Diff = diff.Diff(ds, old)

	ok, verifyRes := diff.Verify(ds, old, o.cfg.Verify)
	result.Validation.Merge(verifyRes)
	if !ok {
		return fail(FailVerification, fmt.Errorf("update rejected: %d error(s)", len(result.Validation.Errors)))
	}

	o.setState(ctx, &result, StatePersisting)
	if o.store.Exists() {
		backupPath, err := o.rotator.Create(o.store.Path())
		if err != nil {
			return fail(FailPersistence, err)
		}
		fmt.Fprintf(o.out, "backed up %s to %s\n", o.store.Path(), backupPath)
	}
	if err := o.store.Save(ds, o.now()); err != nil {
		return fail(FailPersistence, err)
	}
	fmt.Fprintf(o.out, "wrote %s (%d House, %d Senate)\n", o.store.Path(), len(ds.House), len(ds.Senate))

	o.setState(ctx, &result, StateReporting)
	rep, err := o.reports.Generate(result.Diff, result.Validation)
	if err != nil {
		return fail(FailReport, err)
	}
	result.Report = rep
	fmt.Fprintf(o.out, "generated report %s\n", rep.Path)

	o.notify(rep, "")

	result.State = StateDone
	result.FinishedAt = o.now()
	o.record(ctx, result, nil)
	return result, nil
}

// transformStage parses the downloaded files and maps them to the member
// schema. The historical feed is kept on disk for reference but not parsed.
// A broken social-media file degrades to a warning; the roster itself is
// still usable without handles.
func (o *Orchestrator) transformStage(files fetch.Files) (types.Dataset, types.ValidationResult, error) {
	raw, err := os.ReadFile(files.Current)
	if err != nil {
		return types.Dataset{}, types.ValidationResult{}, fmt.Errorf("reading %s: %w", files.Current, err)
	}
	records, err := transform.ParseLegislators(raw)
	if err != nil {
		return types.Dataset{}, types.ValidationResult{}, err
	}

	var social map[string]transform.Social
	var socialWarning string
	socialRaw, err := os.ReadFile(files.SocialMedia)
	if err != nil {
		socialWarning = fmt.Sprintf("social media file unavailable: %v", err)
	} else if parsed, err := transform.ParseSocialMedia(socialRaw); err != nil {
		socialWarning = fmt.Sprintf("social media file unparseable: %v", err)
	} else {
		social = transform.SocialLookup(parsed)
	}

	ds, res := transform.Transform(records, social, transform.Options{Now: o.now()})
	if socialWarning != "" {
		res.Warnf("%s", socialWarning)
	}
	return ds, res, nil
}

// loadPrior reads the persisted snapshot. An unparseable file degrades to
// no-prior with a warning rather than aborting: the incoming data is still
// verifiable on its own, and persisting it repairs the broken file.
func (o *Orchestrator) loadPrior(result *Result) *types.Dataset {
	old, err := o.store.Load()
	if err != nil {
		result.Validation.Warnf("previous dataset unreadable, treating as no prior: %v", err)
		return nil
	}
	return old
}

// writeFailureReport tries to leave a report describing the failure. Best
// effort: a run that cannot even write its report only logs.
func (o *Orchestrator) writeFailureReport(result *Result, runErr *RunError) {
	validation := result.Validation
	if runErr.Kind != FailVerification {
		// Verification failures already carry their reasons; other
		// failures surface the terminal error itself.
		validation.Errorf("run failed during %s: %v", runErr.Kind, runErr.Err)
	}
	rep, err := o.reports.Generate(result.Diff, validation)
	if err != nil {
		fmt.Fprintf(o.out, "warning: failure report not written: %v\n", err)
		return
	}
	result.Report = rep
	fmt.Fprintf(o.out, "generated report %s\n", rep.Path)

	subject := "Congressional Data Update Failed"
	if runErr.Kind == FailVerification {
		subject = "Congressional Data Update Rejected"
	}
	o.notify(rep, subject)
}

// notify sends the report if recipients are configured. Delivery failures
// are logged and never escalate.
func (o *Orchestrator) notify(rep report.Report, subject string) {
	if !o.mailer.Enabled() {
		return
	}
	if err := o.mailer.SendReport(subject, rep.Path, rep.HTMLPath); err != nil {
		fmt.Fprintf(o.out, "warning: notification failed: %v\n", err)
	}
}

func (o *Orchestrator) setState(ctx context.Context, result *Result, state State) {
	result.State = state
	fmt.Fprintf(o.out, "[%s] %s\n", result.RunID[:8], state)
	o.record(ctx, *result, nil)
}

// record persists the run to history. Best effort; history must never fail
// a run.
func (o *Orchestrator) record(ctx context.Context, result Result, runErr *RunError) {
	if o.runs == nil {
		return
	}
	run := history.Run{
		ID:          result.RunID,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
		State:       string(result.State),
		HouseCount:  len(result.Dataset.House),
		SenateCount: len(result.Dataset.Senate),
		ReportPath:  result.Report.Path,
	}
	run.NewCount, run.UpdatedCount, run.RemovedCount = result.Diff.Counts()
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := o.runs.Save(ctx, run); err != nil {
		fmt.Fprintf(o.out, "warning: run history not recorded: %v\n", err)
	}
}
