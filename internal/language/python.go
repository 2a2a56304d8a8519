package language

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

const (
	pythonCompileBudgetSec = 10
	pythonCompileBudgetMb  = 128
)

type pythonAdapter struct{ base }

func (a *pythonAdapter) WriteSource(code, workDir string) (string, error) {
	path := filepath.Join(workDir, "solution.py")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (a *pythonAdapter) Compile(ctx context.Context, sourcePath, workDir string, _ domain.GlobalLimits) (CompileOutcome, error) {
	ok, output, _ := a.runCompile(ctx, workDir, "python3",
		[]string{"-m", "py_compile", "solution.py"},
		pythonCompileBudgetSec, pythonCompileBudgetMb)

	return CompileOutcome{
		OK:             ok,
		RunIdentifier:  "solution.py",
		CompilerOutput: output,
	}, nil
}

func (a *pythonAdapter) RunOne(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult {
	return a.runOne(ctx, workDir, "python3", []string{runIdentifier}, tc, limits, domain.LangPython, 0)
}
