package language

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

const (
	cCompileBudgetSec = 30
	cCompileBudgetMb  = 4096
)

type cAdapter struct{ base }

func (a *cAdapter) WriteSource(code, workDir string) (string, error) {
	path := filepath.Join(workDir, "solution.c")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (a *cAdapter) Compile(ctx context.Context, sourcePath, workDir string, _ domain.GlobalLimits) (CompileOutcome, error) {
	artifact := filepath.Join(workDir, "solution")
	ok, output, _ := a.runCompile(ctx, workDir, "gcc",
		[]string{"solution.c", "-o", "solution", "-O2", "-Wall", "-lm"},
		cCompileBudgetSec, cCompileBudgetMb)

	if ok {
		if _, err := os.Stat(artifact); err != nil {
			ok = false
		}
	}

	return CompileOutcome{
		OK:             ok,
		RunIdentifier:  "./solution",
		CompilerOutput: output,
		ArtifactPath:   artifact,
	}, nil
}

func (a *cAdapter) RunOne(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult {
	return a.runOne(ctx, workDir, runIdentifier, nil, tc, limits, domain.LangC, 0)
}
