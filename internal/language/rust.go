package language

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

const (
	rustCompileBudgetSec = 30
	rustCompileBudgetMb  = 256
)

type rustAdapter struct{ base }

func (a *rustAdapter) WriteSource(code, workDir string) (string, error) {
	path := filepath.Join(workDir, "main.rs")
	clean := stripBOM(code)
	if err := os.WriteFile(path, []byte(clean), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (a *rustAdapter) Compile(ctx context.Context, sourcePath, workDir string, _ domain.GlobalLimits) (CompileOutcome, error) {
	artifact := filepath.Join(workDir, "solution_exec")
	ok, output, _ := a.runCompile(ctx, workDir, "rustc",
		[]string{"main.rs", "-o", "solution_exec"},
		rustCompileBudgetSec, rustCompileBudgetMb)

	if ok {
		if _, err := os.Stat(artifact); err != nil {
			ok = false
		}
	}

	return CompileOutcome{
		OK:             ok,
		RunIdentifier:  "./solution_exec",
		CompilerOutput: output,
		ArtifactPath:   artifact,
	}, nil
}

func (a *rustAdapter) RunOne(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult {
	return a.runOne(ctx, workDir, runIdentifier, nil, tc, limits, domain.LangRust, 0)
}
