// Package verdict holds the single source of truth for mapping a
// process outcome to the verdict taxonomy (spec.md §4.4). The language
// adapters' shared run step calls it; compile failures never reach it,
// since the batch evaluator marks those test cases COMPILE_ERROR itself.
package verdict

import (
	"strings"

	"github.com/Harsh-BH/judgeworker/internal/comparator"
	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/supervisor"
)

const javaOutOfMemoryMarker = "java.lang.OutOfMemoryError"

// Classify applies spec.md §4.4's classification order to one process
// outcome. For Java, stderr is additionally checked for the literal
// "java.lang.OutOfMemoryError" substring and escalated to
// MEMORY_LIMIT_EXCEEDED ahead of the timeout/exit-code checks.
func Classify(outcome domain.ProcessOutcome, lang domain.Language, expectedStdout string) domain.Verdict {
	if outcome.MemoryExceeded {
		return domain.VerdictMemoryLimitExceeded
	}
	if lang == domain.LangJava && strings.Contains(outcome.Stderr, javaOutOfMemoryMarker) {
		return domain.VerdictMemoryLimitExceeded
	}
	if outcome.TimedOut || supervisor.IsOSTimeoutExitCode(outcome.ExitCode) {
		return domain.VerdictTimeLimitExceeded
	}
	if outcome.ExitCode != 0 {
		return domain.VerdictRuntimeError
	}
	if comparator.Equal(outcome.Stdout, expectedStdout) {
		return domain.VerdictAccepted
	}
	return domain.VerdictWrongAnswer
}
