// Package domain holds the data model shared by every component of the
// evaluation engine: the batch job coming in, the process outcome coming
// out of the supervisor, and the result going back to the orchestrator.
package domain

// Language identifies a supported programming language. One worker
// instance is configured for exactly one language (see config.Config).
type Language string

const (
	LangC      Language = "c"
	LangPython Language = "python"
	LangJava   Language = "java"
	LangRust   Language = "rust"
	LangGo     Language = "go"
)

// IsValid reports whether l is one of the five supported languages.
func (l Language) IsValid() bool {
	switch l {
	case LangC, LangPython, LangJava, LangRust, LangGo:
		return true
	}
	return false
}

// Verdict is the fixed taxonomy a test case is classified into.
type Verdict string

const (
	VerdictAccepted            Verdict = "ACCEPTED"
	VerdictWrongAnswer         Verdict = "WRONG_ANSWER"
	VerdictCompileError        Verdict = "COMPILE_ERROR"
	VerdictRuntimeError        Verdict = "RUNTIME_ERROR"
	VerdictTimeLimitExceeded   Verdict = "TIME_LIMIT_EXCEEDED"
	VerdictMemoryLimitExceeded Verdict = "MEMORY_LIMIT_EXCEEDED"
	VerdictFileError           Verdict = "FILE_ERROR"
	VerdictInternalError       Verdict = "INTERNAL_ERROR"
)

// IsTerminal reports whether v is one of the taxonomy's terminal states.
// Every verdict in the taxonomy is terminal; this mirrors the teacher's
// ExecutionStatus.IsTerminal and exists so callers can assert a test
// case has left PENDING/RUNNING without enumerating the whole switch.
func (v Verdict) IsTerminal() bool {
	switch v {
	case VerdictAccepted, VerdictWrongAnswer, VerdictCompileError,
		VerdictRuntimeError, VerdictTimeLimitExceeded, VerdictMemoryLimitExceeded,
		VerdictFileError, VerdictInternalError:
		return true
	}
	return false
}

// TestCaseSpec is one input/expected-output pair plus its resource limits.
type TestCaseSpec struct {
	TestCaseID     string `json:"test_case_id,omitempty"`
	Stdin          string `json:"stdin"`
	ExpectedStdout string `json:"expected_stdout"`
	TimeLimitMs    int    `json:"time_limit_ms"`
	MaxRAMMb       int    `json:"max_ram_mb"`
}

// BatchJob is the input accepted by the Evaluation Service Facade.
// Either SourceCode is inlined directly, or SourceCodeBlobKey names an
// object the Blob Fetch Collaborator retrieves it from — the
// orchestrator uses the latter for submissions too large to inline.
type BatchJob struct {
	Language          Language       `json:"language"`
	SourceCode        string         `json:"source_code"`
	SourceCodeBlobKey string         `json:"source_code_blob_key,omitempty"`
	SubmissionID      string         `json:"submission_id"`
	TestCases         []TestCaseSpec `json:"test_cases"`
}

// ProcessOutcome is what the Process Supervisor hands back after running
// one child to completion (or termination).
type ProcessOutcome struct {
	ExitCode       int
	Stdout         string
	Stderr         string
	DurationMs     int64
	TimedOut       bool
	MemoryExceeded bool
}

// Sentinel exit codes a ProcessOutcome may carry in ExitCode.
const (
	ExitKilledByDeadline = -1
	ExitKilledByMemory   = -2
	ExitSupervisorFailed = -999
)

// TestCaseResult is the per-test-case outcome reported in a BatchResult.
type TestCaseResult struct {
	TestCaseID     string  `json:"test_case_id,omitempty"`
	Status         Verdict `json:"status"`
	Stdout         string  `json:"stdout"`
	Stderr         string  `json:"stderr"`
	ExitCode       int     `json:"exit_code"`
	DurationMs     int64   `json:"duration_ms"`
	MemoryExceeded bool    `json:"memory_exceeded"`
	Message        string  `json:"message,omitempty"`
}

// BatchResult is the final outcome of one batch, delivered to the
// orchestrator callback exactly once.
type BatchResult struct {
	SubmissionID       string           `json:"submission_id"`
	CompilationSuccess bool             `json:"compilation_success"`
	CompilerOutput     string           `json:"compiler_output"`
	TestCaseResults    []TestCaseResult `json:"test_case_results"`
}

// GlobalLimits are the process-wide ceilings every per-case limit is
// clamped against before a run.
type GlobalLimits struct {
	MaxTimeSec   int
	MaxMemoryMb  int
}

// Clamp returns the effective time limit (seconds) and memory limit (MB)
// for a test case, applying min(per-case, global) as spec.md §3 requires.
// The millisecond limit floors to whole seconds (spec.md §4.3's
// N = max(time_limit_ms/1000, 1)), not rounds up, so a 1500ms limit
// yields 1s here rather than 2s.
func (g GlobalLimits) Clamp(timeLimitMs, maxRAMMb int) (timeLimitSec int, memoryMb int) {
	timeLimitSec = timeLimitMs / 1000
	if timeLimitSec < 1 {
		timeLimitSec = 1
	}
	if g.MaxTimeSec > 0 && timeLimitSec > g.MaxTimeSec {
		timeLimitSec = g.MaxTimeSec
	}
	memoryMb = maxRAMMb
	if g.MaxMemoryMb > 0 && memoryMb > g.MaxMemoryMb {
		memoryMb = g.MaxMemoryMb
	}
	return timeLimitSec, memoryMb
}
