package language

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

const (
	javaCompileBudgetSec = 30
	javaCompileBudgetMb  = 2048

	// javaMemHeadroomMb accounts for JVM overhead above the heap itself,
	// so a submission's own -Xmx can sit inside the test case's memory
	// limit without the supervisor's RSS watchdog tripping on JVM
	// bookkeeping before the program even allocates anything.
	javaMemHeadroomMb = 64
)

type javaAdapter struct{ base }

func (a *javaAdapter) WriteSource(code, workDir string) (string, error) {
	path := filepath.Join(workDir, "Solution.java")
	clean := stripBOM(code)
	if err := os.WriteFile(path, []byte(clean), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (a *javaAdapter) Compile(ctx context.Context, sourcePath, workDir string, _ domain.GlobalLimits) (CompileOutcome, error) {
	ok, output, _ := a.runCompile(ctx, workDir, "javac",
		[]string{"-encoding", "UTF-8", "-d", ".", "Solution.java"},
		javaCompileBudgetSec, javaCompileBudgetMb)

	if ok {
		classFile := filepath.Join(workDir, "Solution.class")
		if _, err := os.Stat(classFile); err != nil {
			ok = false
		}
	}

	return CompileOutcome{
		OK:             ok,
		RunIdentifier:  "Solution",
		CompilerOutput: output,
	}, nil
}

func (a *javaAdapter) RunOne(ctx context.Context, workDir, runIdentifier string, tc domain.TestCaseSpec, limits domain.GlobalLimits) domain.TestCaseResult {
	_, memoryMb := limits.Clamp(tc.TimeLimitMs, tc.MaxRAMMb)
	xmx := fmt.Sprintf("-Xmx%dm", memoryMb)
	args := []string{"-cp", workDir, xmx, runIdentifier}
	return a.runOne(ctx, workDir, "java", args, tc, limits, domain.LangJava, javaMemHeadroomMb)
}
