package language

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/supervisor"
	"github.com/Harsh-BH/judgeworker/internal/verdict"
)

// runOne implements the run-one procedure common to every language
// (spec.md §4.3): wrap under the OS deadline helper, invoke the
// supervisor with the per-case (globally-clamped) limits, trim
// trailing CR/LF, and classify the outcome into a verdict.
func (b base) runOne(
	ctx context.Context,
	workDir, command string,
	args []string,
	tc domain.TestCaseSpec,
	limits domain.GlobalLimits,
	lang domain.Language,
	memHeadroomMb int,
) domain.TestCaseResult {
	timeLimitSec, memoryMb := limits.Clamp(tc.TimeLimitMs, tc.MaxRAMMb)
	memoryMb += memHeadroomMb

	wrappedCmd, wrappedArgs := supervisor.WrapWithTimeout(timeLimitSec, command, args)
	supervisorDeadline := supervisor.SupervisorDeadlineSeconds(timeLimitSec)

	outcome, err := b.sv.Run(ctx, wrappedCmd, wrappedArgs, workDir, []byte(tc.Stdin), supervisorDeadline, memoryMb)
	if err != nil {
		b.logger.Error("language: supervisor run failed",
			zap.String("language", string(lang)),
			zap.String("test_case_id", tc.TestCaseID),
			zap.Error(err),
		)
		return domain.TestCaseResult{
			TestCaseID: tc.TestCaseID,
			Status:     domain.VerdictInternalError,
			Message:    "supervisor failed to run the test case",
		}
	}

	outcome.Stdout = trimTrailingCRLF(outcome.Stdout)
	outcome.Stderr = trimTrailingCRLF(outcome.Stderr)

	v := verdict.Classify(outcome, lang, tc.ExpectedStdout)

	return domain.TestCaseResult{
		TestCaseID:     tc.TestCaseID,
		Status:         v,
		Stdout:         outcome.Stdout,
		Stderr:         outcome.Stderr,
		ExitCode:       outcome.ExitCode,
		DurationMs:     outcome.DurationMs,
		MemoryExceeded: outcome.MemoryExceeded,
	}
}

func trimTrailingCRLF(s string) string {
	return strings.TrimRight(s, "\r\n")
}
