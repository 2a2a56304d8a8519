package language

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

const (
	goCompileBudgetSec = 30
	goCompileBudgetMb  = 256
)

type goAdapter struct{ base }

func (a *goAdapter) WriteSource(code, workDir string) (string, error) {
	path := filepath.Join(workDir, "main.go")
	clean := stripBOM(code)
	if err := os.WriteFile(path, []byte(clean), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (a *goAdapter) Compile(ctx context.Context, sourcePath, workDir string, _ domain.GlobalLimits) (CompileOutcome, error) {
	artifact := filepath.Join(workDir, "solution_exec")
	ok, output, _ := a.runCompile(ctx, workDir, "go",
		[]string{"build", "-o", "solution_exec", "main.go"},
		goCompileBudgetSec, goCompileBudgetMb)

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

func (a *goAdapter) RunOne(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult {
	return a.runOne(ctx, workDir, runIdentifier, nil, tc, limits, domain.LangGo, 0)
}
