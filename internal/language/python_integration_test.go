//go:build integration

package language

import (
	"context"
	"os/exec"
	"testing"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/supervisor"
)

// ──────────────────────────────────────────────────────
// Integration tests — require python3 installed
// Run with: go test -tags integration -v ./internal/language/
// ──────────────────────────────────────────────────────

func skipIfNoPython3(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not found in PATH — skipping integration test")
	}
}

func TestIntegration_PythonHelloWorld(t *testing.T) {
	skipIfNoPython3(t)

	sv := supervisor.New(zap.NewNop())
	a := &pythonAdapter{base{sv: sv, logger: zap.NewNop()}}
	dir := t.TempDir()

	src, err := a.WriteSource("print('hello')", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	limits := domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 256}
	compiled, err := a.Compile(context.Background(), src, dir, limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !compiled.OK {
		t.Fatalf("expected compile success, got output: %s", compiled.CompilerOutput)
	}

	tc := domain.TestCaseSpec{TestCaseID: "1", ExpectedStdout: "hello\n", TimeLimitMs: 5000, MaxRAMMb: 128}
	result := a.RunOne(context.Background(), dir, compiled.RunIdentifier, tc, limits)

	if result.Status != domain.VerdictAccepted {
		t.Errorf("expected ACCEPTED, got %s (stderr: %s)", result.Status, result.Stderr)
	}
}

func TestIntegration_PythonCompileError(t *testing.T) {
	skipIfNoPython3(t)

	sv := supervisor.New(zap.NewNop())
	a := &pythonAdapter{base{sv: sv, logger: zap.NewNop()}}
	dir := t.TempDir()

	src, err := a.WriteSource("def broken(:\n", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	limits := domain.GlobalLimits{MaxTimeSec: 10, MaxMemoryMb: 256}
	compiled, err := a.Compile(context.Background(), src, dir, limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if compiled.OK {
		t.Fatal("expected compile failure for invalid syntax")
	}
	if compiled.CompilerOutput == "" {
		t.Error("expected compiler output on failure")
	}
}
