package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"mergelint/internal/diag"
	"mergelint/internal/mergetag"
	"mergelint/internal/observ"
	"mergelint/internal/source"
	"mergelint/internal/trace"
)

// ErrNoDocuments is returned when the inputs expand to no documents.
var ErrNoDocuments = errors.New("no documents to check")

// CheckResult содержит результат проверки одного документа.
type CheckResult struct {
	Path       string
	FileID     source.FileID
	Bag        *diag.Bag
	Findings   []mergetag.Finding
	Structural []string
	Cached     bool
	Timing     observ.Report
}

// Messages returns the messages of all diagnostics: merge-tag findings in
// scan order followed by structural issues.
func (r *CheckResult) Messages() []string {
	if r == nil || r.Bag == nil {
		return nil
	}
	return r.Bag.Messages()
}

// Check expands inputs (files, directories and "-" for stdin), loads every
// document and checks them in parallel. Results follow input order, with
// stdin first and directory contents sorted.
func Check(ctx context.Context, inputs []string, opts Options) (*source.FileSet, []CheckResult, error) {
	tr := trace.FromContext(ctx)
	run := trace.Begin(tr, trace.ScopeRun, "check", 0)
	defer run.End("")

	fileSet := source.NewFileSet()
	if opts.BaseDir != "" {
		fileSet.SetBaseDir(opts.BaseDir)
	}

	docs, err := collect(fileSet, inputs, &opts)
	if err != nil {
		return fileSet, nil, err
	}
	if len(docs) == 0 {
		return fileSet, nil, ErrNoDocuments
	}
	run.Attr("documents", strconv.Itoa(len(docs)))

	for _, doc := range docs {
		emit(opts.Progress, Event{File: doc.path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	v := opts.validator()
	var rules [32]byte
	if opts.Cache != nil {
		rules = v.Fingerprint()
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(docs)))

	for i, doc := range docs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := checkDocument(gctx, fileSet, doc, v, rules, &opts, run.ID())
			if err != nil {
				return fmt.Errorf("%s: %w", doc.path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func checkDocument(ctx context.Context, fileSet *source.FileSet, doc document, v *mergetag.Validator, rules [32]byte, opts *Options, parent uint64) (CheckResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "file:"+doc.path, parent)
	begin := time.Now()

	file := fileSet.Get(doc.id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.CountingReporter{Next: diag.BagReporter{Bag: bag}}
	res := CheckResult{Path: doc.path, FileID: doc.id, Bag: bag}

	if doc.loadErr != nil {
		reportLoadError(reporter, file, doc.loadErr)
		span.End("load error")
		emit(opts.Progress, Event{File: doc.path, Stage: StageLoad, Status: StatusError, Err: doc.loadErr, Elapsed: time.Since(begin)})
		return res, nil
	}

	emit(opts.Progress, Event{File: doc.path, Stage: StageScan, Status: StatusWorking})

	timer := observ.NewTimer()
	var key CacheKey
	if opts.Cache != nil {
		key = MakeCacheKey(file.Hash, rules, opts.StructuralKey)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Error(tr, trace.ScopeFile, "cache:"+doc.path, err, span.ID())
		}
		if hit && payload.HasStructural == (opts.Structural != nil) {
			res.Findings = payload.Findings
			res.Structural = payload.Structural
			res.Cached = true
		}
	}

	if !res.Cached {
		pass := trace.Begin(tr, trace.ScopePass, "merge-tags", span.ID())
		idx := timer.Begin("merge-tags")
		res.Findings = v.Validate(file.Text())
		timer.End(idx, strconv.Itoa(len(res.Findings))+" findings")
		pass.End("")

		lintFailed := false
		if opts.Structural != nil {
			emit(opts.Progress, Event{File: doc.path, Stage: StageStructural, Status: StatusWorking})
			idx := timer.Begin("structural")
			issues, err := runStructural(ctx, opts.Structural, file)
			if err != nil {
				trace.Error(tr, trace.ScopePass, "structural:"+doc.path, err, span.ID())
				issues, lintFailed = nil, true
			}
			res.Structural = issues
			timer.End(idx, strconv.Itoa(len(issues))+" issues")
		}

		// Неудачный запуск линтера не кэшируем: следующий прогон повторит его.
		if opts.Cache != nil && !lintFailed && ctx.Err() == nil {
			payload := &DiskPayload{
				Path:          doc.path,
				Findings:      res.Findings,
				Structural:    res.Structural,
				HasStructural: opts.Structural != nil,
			}
			if err := opts.Cache.Put(key, payload); err != nil {
				trace.Error(tr, trace.ScopeFile, "cache:"+doc.path, err, span.ID())
			}
		}
	}

	if err := reportFindings(reporter, file, res.Findings); err != nil {
		span.End("error")
		return res, err
	}
	reportStructural(reporter, file, res.Structural)
	res.Timing = timer.Report()

	span.Attr("diagnostics", strconv.Itoa(reporter.Kept)).
		Attr("dropped", strconv.Itoa(reporter.Rejected)).
		Attr("cached", strconv.FormatBool(res.Cached)).
		End("")
	emit(opts.Progress, Event{
		File:     doc.path,
		Stage:    StageScan,
		Status:   StatusDone,
		Findings: bag.Len(),
		Cached:   res.Cached,
		Elapsed:  time.Since(begin),
	})
	return res, nil
}

// runStructural hands the document to the linter by path. Documents that
// only exist in memory are written to a transient file first.
func runStructural(ctx context.Context, linter StructuralLinter, file *source.File) ([]string, error) {
	if file.Flags&source.FileVirtual == 0 {
		return linter.Lint(ctx, file.Path)
	}
	var (
		issues  []string
		lintErr error
	)
	err := withTransientFile(file.Content, func(path string) {
		issues, lintErr = linter.Lint(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return issues, lintErr
}
