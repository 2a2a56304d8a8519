package language

import "context"

// runCompile invokes the supervisor for a compile/validate step under
// the per-language compile budget from spec.md §4.3's table. It does
// not go through the OS `timeout` wrapper — that wrapping is specific
// to the per-test-case run step (§4.3 step 2).
func (b base) runCompile(ctx context.Context, workDir, command string, args []string, budgetSec, budgetMb int) (ok bool, compilerOutput string, exitCode int) {
	outcome, err := b.sv.Run(ctx, command, args, workDir, nil, budgetSec, budgetMb)
	if err != nil {
		return false, "", -1
	}
	output := outcome.Stdout
	if outcome.Stderr != "" {
		if output != "" {
			output += "\n"
		}
		output += outcome.Stderr
	}
	return outcome.ExitCode == 0, output, outcome.ExitCode
}
