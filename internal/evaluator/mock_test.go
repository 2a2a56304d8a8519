package evaluator

import (
	"context"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/language"
)

// mockAdapter is a hand-rolled test double for language.Adapter, in the
// teacher's *Fn-field mock style.
type mockAdapter struct {
	WriteSourceFn func(code, workDir string) (string, error)
	CompileFn     func(ctx context.Context, sourcePath, workDir string, limits domain.GlobalLimits) (language.CompileOutcome, error)
	RunOneFn      func(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult

	RunOneCalls []domain.TestCaseSpec
}

func (m *mockAdapter) WriteSource(code, workDir string) (string, error) {
	if m.WriteSourceFn != nil {
		return m.WriteSourceFn(code, workDir)
	}
	return workDir + "/solution.src", nil
}

func (m *mockAdapter) Compile(ctx context.Context, sourcePath, workDir string, limits domain.GlobalLimits) (language.CompileOutcome, error) {
	if m.CompileFn != nil {
		return m.CompileFn(ctx, sourcePath, workDir, limits)
	}
	return language.CompileOutcome{OK: true, RunIdentifier: "./solution"}, nil
}

func (m *mockAdapter) RunOne(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult {
	m.RunOneCalls = append(m.RunOneCalls, tc)
	if m.RunOneFn != nil {
		return m.RunOneFn(ctx, workDir, runIdentifier, tc, limits)
	}
	return domain.TestCaseResult{TestCaseID: tc.TestCaseID, Status: domain.VerdictAccepted}
}

// mockRegistry is a test double for AdapterRegistry that always returns
// the same adapter regardless of language, or nil if unset.
type mockRegistry struct {
	Adapter language.Adapter
}

func (r *mockRegistry) Get(lang domain.Language) language.Adapter {
	return r.Adapter
}
