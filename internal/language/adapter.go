// Package language implements the per-language capability set spec.md
// §4.3 requires: write_source, compile, run_one. Each supported
// language is a small variant behind the Adapter interface; Registry
// dispatches on domain.Language rather than using inheritance, per
// spec.md §9's "tagged variant plus a dispatch table" guidance.
package language

import (
	"context"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/supervisor"
)

// CompileOutcome is the result of one language's compile/validate step.
type CompileOutcome struct {
	OK             bool
	RunIdentifier  string // executable path (compiled) or script path (interpreted)
	CompilerOutput string // concatenated stdout+stderr of the compile step
	ArtifactPath   string
}

// Adapter is the capability set the Batch Evaluator requires of every
// supported language.
type Adapter interface {
	// WriteSource writes code to its canonical file name under workDir
	// and returns the path written.
	WriteSource(code, workDir string) (sourcePath string, err error)

	// Compile validates/compiles the source written by WriteSource.
	Compile(ctx context.Context, sourcePath, workDir string, limits domain.GlobalLimits) (CompileOutcome, error)

	// RunOne executes one test case against runIdentifier and returns
	// its fully-classified TestCaseResult.
	RunOne(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult
}

// Registry maps domain.Language to its Adapter, the dispatch table
// spec.md §9 calls for.
type Registry struct {
	adapters map[domain.Language]Adapter
}

// NewRegistry builds the dispatch table for all five supported languages.
func NewRegistry(sv *supervisor.Supervisor, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := base{sv: sv, logger: logger}
	return &Registry{
		adapters: map[domain.Language]Adapter{
			domain.LangC:      &cAdapter{base},
			domain.LangPython: &pythonAdapter{base},
			domain.LangJava:   &javaAdapter{base},
			domain.LangRust:   &rustAdapter{base},
			domain.LangGo:     &goAdapter{base},
		},
	}
}

// Get returns the adapter for lang, or nil if unsupported.
func (r *Registry) Get(lang domain.Language) Adapter {
	return r.adapters[lang]
}

// base holds the fields every language variant needs: the process
// supervisor to run commands through, and a logger.
type base struct {
	sv     *supervisor.Supervisor
	logger *zap.Logger
}
