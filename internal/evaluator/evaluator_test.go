package evaluator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/language"
)

func validJob() domain.BatchJob {
	return domain.BatchJob{
		Language:     domain.LangPython,
		SourceCode:   "print('hi')",
		SubmissionID: "sub-1",
		TestCases: []domain.TestCaseSpec{
			{TestCaseID: "tc-1", ExpectedStdout: "hi\n", TimeLimitMs: 1000, MaxRAMMb: 128},
			{TestCaseID: "tc-2", ExpectedStdout: "bye\n", TimeLimitMs: 1000, MaxRAMMb: 128},
		},
	}
}

func TestEvaluate_CompileFailure_AllTestCasesCompileError(t *testing.T) {
	adapter := &mockAdapter{
		CompileFn: func(ctx context.Context, sourcePath, workDir string, limits domain.GlobalLimits) (language.CompileOutcome, error) {
			return language.CompileOutcome{OK: false, CompilerOutput: "syntax error"}, nil
		},
	}
	e := New(&mockRegistry{Adapter: adapter}, nil, domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 512}, t.TempDir(), zap.NewNop())

	result, err := e.Evaluate(context.Background(), validJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CompilationSuccess {
		t.Error("expected CompilationSuccess=false")
	}
	if result.CompilerOutput != "syntax error" {
		t.Errorf("expected compiler output to be preserved, got %q", result.CompilerOutput)
	}
	if len(result.TestCaseResults) != 2 {
		t.Fatalf("expected one result per test case, got %d", len(result.TestCaseResults))
	}
	for _, tcr := range result.TestCaseResults {
		if tcr.Status != domain.VerdictCompileError {
			t.Errorf("expected COMPILE_ERROR, got %s", tcr.Status)
		}
	}
	if len(adapter.RunOneCalls) != 0 {
		t.Error("expected RunOne never invoked after a compile failure")
	}
}

func TestEvaluate_CompileSuccess_RunsEachTestCaseInOrder(t *testing.T) {
	var seenOrder []string
	adapter := &mockAdapter{
		RunOneFn: func(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult {
			seenOrder = append(seenOrder, tc.TestCaseID)
			status := domain.VerdictAccepted
			if tc.TestCaseID == "tc-2" {
				status = domain.VerdictWrongAnswer
			}
			return domain.TestCaseResult{TestCaseID: tc.TestCaseID, Status: status}
		},
	}
	e := New(&mockRegistry{Adapter: adapter}, nil, domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 512}, t.TempDir(), zap.NewNop())

	result, err := e.Evaluate(context.Background(), validJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.CompilationSuccess {
		t.Error("expected CompilationSuccess=true")
	}
	if len(result.TestCaseResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.TestCaseResults))
	}
	if seenOrder[0] != "tc-1" || seenOrder[1] != "tc-2" {
		t.Errorf("expected test cases run in submitted order, got %v", seenOrder)
	}
	if result.TestCaseResults[0].Status != domain.VerdictAccepted {
		t.Errorf("expected tc-1 ACCEPTED, got %s", result.TestCaseResults[0].Status)
	}
	if result.TestCaseResults[1].Status != domain.VerdictWrongAnswer {
		t.Errorf("expected tc-2 WRONG_ANSWER, got %s", result.TestCaseResults[1].Status)
	}
}

func TestEvaluate_CleansUpSandboxDirectory(t *testing.T) {
	var capturedDir string
	adapter := &mockAdapter{
		WriteSourceFn: func(code, workDir string) (string, error) {
			capturedDir = workDir
			return filepath.Join(workDir, "solution.py"), nil
		},
	}
	root := t.TempDir()
	e := New(&mockRegistry{Adapter: adapter}, nil, domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 512}, root, zap.NewNop())

	if _, err := e.Evaluate(context.Background(), validJob()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if capturedDir == "" {
		t.Fatal("expected WriteSource to be invoked with a sandbox dir")
	}
	if _, err := os.Stat(capturedDir); !os.IsNotExist(err) {
		t.Errorf("expected sandbox dir to be removed after evaluation, stat err=%v", err)
	}
}

func TestEvaluate_RejectsInvalidLanguage(t *testing.T) {
	e := New(&mockRegistry{}, nil, domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 512}, t.TempDir(), zap.NewNop())

	job := validJob()
	job.Language = domain.Language("cobol")

	_, err := e.Evaluate(context.Background(), job)
	if err != domain.ErrInvalidLanguage {
		t.Errorf("expected ErrInvalidLanguage, got %v", err)
	}
}

func TestEvaluate_RejectsEmptySourceCode(t *testing.T) {
	e := New(&mockRegistry{Adapter: &mockAdapter{}}, nil, domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 512}, t.TempDir(), zap.NewNop())

	job := validJob()
	job.SourceCode = ""

	_, err := e.Evaluate(context.Background(), job)
	if err != domain.ErrEmptySourceCode {
		t.Errorf("expected ErrEmptySourceCode, got %v", err)
	}
}

func TestEvaluate_RejectsNoTestCases(t *testing.T) {
	e := New(&mockRegistry{Adapter: &mockAdapter{}}, nil, domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 512}, t.TempDir(), zap.NewNop())

	job := validJob()
	job.TestCases = nil

	_, err := e.Evaluate(context.Background(), job)
	if err != domain.ErrNoTestCases {
		t.Errorf("expected ErrNoTestCases, got %v", err)
	}
}

type mockFetcher struct {
	FetchFn func(ctx context.Context, key string) (string, error)
}

func (f *mockFetcher) Fetch(ctx context.Context, key string) (string, error) {
	return f.FetchFn(ctx, key)
}

func TestEvaluate_ResolvesSourceFromBlobKey(t *testing.T) {
	var writtenCode string
	adapter := &mockAdapter{
		WriteSourceFn: func(code, workDir string) (string, error) {
			writtenCode = code
			return filepath.Join(workDir, "solution.py"), nil
		},
	}
	fetcher := &mockFetcher{
		FetchFn: func(ctx context.Context, key string) (string, error) {
			if key != "submissions/sub-1/source.py" {
				t.Errorf("unexpected blob key %q", key)
			}
			return "print('from blob')", nil
		},
	}
	e := New(&mockRegistry{Adapter: adapter}, fetcher, domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 512}, t.TempDir(), zap.NewNop())

	job := validJob()
	job.SourceCode = ""
	job.SourceCodeBlobKey = "submissions/sub-1/source.py"

	result, err := e.Evaluate(context.Background(), job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.CompilationSuccess {
		t.Errorf("expected compilation success, got output %q", result.CompilerOutput)
	}
	if writtenCode != "print('from blob')" {
		t.Errorf("expected source fetched from blob store, got %q", writtenCode)
	}
}

func TestEvaluate_BlobNotFound_ReturnsFileErrorForEveryTestCase(t *testing.T) {
	fetcher := &mockFetcher{
		FetchFn: func(ctx context.Context, key string) (string, error) {
			return "", domain.ErrBlobNotFound
		},
	}
	e := New(&mockRegistry{Adapter: &mockAdapter{}}, fetcher, domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 512}, t.TempDir(), zap.NewNop())

	job := validJob()
	job.SourceCode = ""
	job.SourceCodeBlobKey = "submissions/missing/source.py"

	result, err := e.Evaluate(context.Background(), job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CompilationSuccess {
		t.Error("expected CompilationSuccess=false when the source blob is missing")
	}
	for _, tcr := range result.TestCaseResults {
		if tcr.Status != domain.VerdictFileError {
			t.Errorf("expected FILE_ERROR, got %s", tcr.Status)
		}
	}
}
