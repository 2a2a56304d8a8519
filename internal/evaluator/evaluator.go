// Package evaluator implements the Batch Evaluator: write a submission's
// source once, compile it once, run every test case against the single
// compiled artifact in order, and clean up the sandbox on every exit
// path. This mirrors the teacher's usecase layer
// (worker/internal/usecase/usecase.go), which also does
// validate-once/run-many and swallows non-fatal cleanup errors rather
// than letting them fail the job.
package evaluator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/language"
	"github.com/Harsh-BH/judgeworker/internal/metrics"
)

// AdapterRegistry is the subset of language.Registry the evaluator
// needs, narrowed to an interface so tests can substitute a mock
// adapter without going through a real compiler/interpreter.
type AdapterRegistry interface {
	Get(lang domain.Language) language.Adapter
}

// BlobFetcher is the subset of blobstore.Store the evaluator needs to
// resolve a job whose source arrives as a blob key rather than inline.
type BlobFetcher interface {
	Fetch(ctx context.Context, key string) (string, error)
}

// Evaluator runs one batch job to completion inside its own sandbox
// subdirectory.
type Evaluator struct {
	registry AdapterRegistry
	fetcher  BlobFetcher
	limits   domain.GlobalLimits
	workDir  string
	logger   *zap.Logger
}

// New builds an Evaluator. workDir is the root sandbox directory; each
// batch gets its own UUID-named subdirectory beneath it so concurrent
// batches never share files (spec.md §5, §9's "shared sandbox race").
// fetcher may be nil when no blob storage is configured; jobs that name
// a SourceCodeBlobKey then fail with FILE_ERROR on every test case.
func New(registry AdapterRegistry, fetcher BlobFetcher, limits domain.GlobalLimits, workDir string, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{registry: registry, fetcher: fetcher, limits: limits, workDir: workDir, logger: logger}
}

// Evaluate validates, compiles, and runs job, returning its full
// BatchResult. The only errors returned are ones that mean the batch
// could not be attempted at all (bad input, sandbox setup failure);
// everything the submitted program itself does is folded into the
// verdict taxonomy instead.
func (e *Evaluator) Evaluate(ctx context.Context, job domain.BatchJob) (domain.BatchResult, error) {
	if err := validate(job); err != nil {
		return domain.BatchResult{}, err
	}

	adapter := e.registry.Get(job.Language)
	if adapter == nil {
		return domain.BatchResult{}, domain.ErrInvalidLanguage
	}

	logger := e.logger.With(
		zap.String("submission_id", job.SubmissionID),
		zap.String("language", string(job.Language)),
		zap.Int("test_case_count", len(job.TestCases)),
	)

	start := time.Now()
	metrics.BatchesInFlight.Inc()
	defer metrics.BatchesInFlight.Dec()

	sandboxDir := filepath.Join(e.workDir, uuid.NewString())
	if err := os.MkdirAll(sandboxDir, 0o755); err != nil {
		logger.Error("evaluator: failed to create sandbox directory", zap.Error(err))
		return domain.BatchResult{}, err
	}
	defer e.cleanup(sandboxDir, logger)

	result := domain.BatchResult{SubmissionID: job.SubmissionID}

	sourceCode := job.SourceCode
	if sourceCode == "" && job.SourceCodeBlobKey != "" {
		fetched, err := e.fetchSource(ctx, job.SourceCodeBlobKey, logger)
		if err != nil {
			result.CompilationSuccess = false
			result.CompilerOutput = "source code could not be retrieved from blob storage"
			result.TestCaseResults = fileErrorResults(job.TestCases, "source code could not be retrieved from blob storage")
			e.record(job.Language, result, start)
			return result, nil
		}
		sourceCode = fetched
	}

	sourcePath, err := adapter.WriteSource(sourceCode, sandboxDir)
	if err != nil {
		logger.Error("evaluator: failed to write source", zap.Error(err))
		result.CompilationSuccess = false
		result.CompilerOutput = "internal error writing source file"
		result.TestCaseResults = internalErrorResults(job.TestCases, "setup failed: could not write source file")
		e.record(job.Language, result, start)
		return result, nil
	}

	compiled, err := adapter.Compile(ctx, sourcePath, sandboxDir, e.limits)
	if err != nil {
		logger.Error("evaluator: compile step failed to run", zap.Error(err))
		result.CompilationSuccess = false
		result.CompilerOutput = "internal error invoking the compiler"
		result.TestCaseResults = internalErrorResults(job.TestCases, "internal error invoking the compiler")
		e.record(job.Language, result, start)
		return result, nil
	}

	result.CompilationSuccess = compiled.OK
	result.CompilerOutput = compiled.CompilerOutput

	if !compiled.OK {
		logger.Info("evaluator: compilation failed")
		result.TestCaseResults = compileErrorResults(job.TestCases, "compilation failed")
		e.record(job.Language, result, start)
		return result, nil
	}

	results := make([]domain.TestCaseResult, 0, len(job.TestCases))
	for _, tc := range job.TestCases {
		tcResult := adapter.RunOne(ctx, sandboxDir, compiled.RunIdentifier, tc, e.limits)
		results = append(results, tcResult)
		metrics.TestCasesTotal.WithLabelValues(string(job.Language), string(tcResult.Status)).Inc()
	}
	result.TestCaseResults = results

	e.record(job.Language, result, start)
	logger.Info("evaluator: batch complete", zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (e *Evaluator) record(lang domain.Language, result domain.BatchResult, start time.Time) {
	metrics.BatchesTotal.WithLabelValues(string(lang), boolLabel(result.CompilationSuccess)).Inc()
	metrics.BatchDuration.WithLabelValues(string(lang)).Observe(time.Since(start).Seconds())
}

func (e *Evaluator) fetchSource(ctx context.Context, key string, logger *zap.Logger) (string, error) {
	if e.fetcher == nil {
		logger.Error("evaluator: job names a source blob key but no blob store is configured", zap.String("blob_key", key))
		return "", errors.New("no blob store configured")
	}
	code, err := e.fetcher.Fetch(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			logger.Warn("evaluator: source blob not found", zap.String("blob_key", key))
		} else {
			logger.Error("evaluator: source blob fetch failed", zap.String("blob_key", key), zap.Error(err))
		}
		return "", err
	}
	return code, nil
}

func (e *Evaluator) cleanup(sandboxDir string, logger *zap.Logger) {
	if err := os.RemoveAll(sandboxDir); err != nil {
		logger.Warn("evaluator: failed to remove sandbox directory", zap.String("dir", sandboxDir), zap.Error(err))
	}
}

func validate(job domain.BatchJob) error {
	if !job.Language.IsValid() {
		return domain.ErrInvalidLanguage
	}
	if job.SourceCode == "" && job.SourceCodeBlobKey == "" {
		return domain.ErrEmptySourceCode
	}
	if len(job.TestCases) == 0 {
		return domain.ErrNoTestCases
	}
	return nil
}

func compileErrorResults(cases []domain.TestCaseSpec, message string) []domain.TestCaseResult {
	results := make([]domain.TestCaseResult, len(cases))
	for i, tc := range cases {
		results[i] = domain.TestCaseResult{TestCaseID: tc.TestCaseID, Status: domain.VerdictCompileError, Message: message}
	}
	return results
}

func internalErrorResults(cases []domain.TestCaseSpec, message string) []domain.TestCaseResult {
	results := make([]domain.TestCaseResult, len(cases))
	for i, tc := range cases {
		results[i] = domain.TestCaseResult{TestCaseID: tc.TestCaseID, Status: domain.VerdictInternalError, Message: message}
	}
	return results
}

func fileErrorResults(cases []domain.TestCaseSpec, message string) []domain.TestCaseResult {
	results := make([]domain.TestCaseResult, len(cases))
	for i, tc := range cases {
		results[i] = domain.TestCaseResult{TestCaseID: tc.TestCaseID, Status: domain.VerdictFileError, Message: message}
	}
	return results
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
