// Package supervisor launches and reaps a single child process with
// enforced wall-clock and memory limits. It is the sandbox of the
// evaluation engine: every language adapter's run step goes through it.
package supervisor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/metrics"
)

const (
	memoryWarmup      = 100 * time.Millisecond
	memoryPollPeriod  = 250 * time.Millisecond
	deadlineGraceSecs = 2

	// maxOutputBytes caps captured stdout/stderr so a runaway child
	// printing without bound can't exhaust host memory.
	maxOutputBytes = 64 * 1024

	outputTruncatedMsg = "\n... output truncated (64 KB limit) ..."
)

// limitedBuffer is a bytes.Buffer that silently stops accepting writes
// once it reaches limit, rather than growing without bound.
type limitedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (lb *limitedBuffer) Write(p []byte) (n int, err error) {
	if lb.truncated {
		return len(p), nil
	}
	remaining := lb.limit - lb.buf.Len()
	if remaining <= 0 {
		lb.truncated = true
		return len(p), nil
	}
	if len(p) > remaining {
		lb.truncated = true
		p = p[:remaining]
	}
	return lb.buf.Write(p)
}

func (lb *limitedBuffer) String() string {
	if lb.truncated {
		return lb.buf.String() + outputTruncatedMsg
	}
	return lb.buf.String()
}

// Supervisor launches a child process, enforces time and memory limits
// via two concurrent watchdogs, and returns a domain.ProcessOutcome once
// the child has been confirmed terminated.
type Supervisor struct {
	logger *zap.Logger
}

// New creates a Supervisor.
func New(logger *zap.Logger) *Supervisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Supervisor{logger: logger}
}

// Run launches command with args in workDir, feeds stdinBytes (if any) on
// standard input, and enforces timeLimitSec wall-clock and maxMemoryMb
// resident-set limits exactly as given; it applies no global ceiling of
// its own (callers clamp first). It blocks until the child has exited
// or been killed, and never returns before the child is reaped.
func (s *Supervisor) Run(
	ctx context.Context,
	command string,
	args []string,
	workDir string,
	stdinBytes []byte,
	timeLimitSec int,
	maxMemoryMb int,
) (domain.ProcessOutcome, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = workDir
	cmd.SysProcAttr = childProcAttr()

	var stdout, stderr limitedBuffer
	stdout.limit = maxOutputBytes
	stderr.limit = maxOutputBytes
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var stdinCloser io.WriteCloser
	if stdinBytes != nil {
		stdinPipe, err := cmd.StdinPipe()
		if err != nil {
			metrics.SupervisorFailures.Inc()
			return domain.ProcessOutcome{ExitCode: domain.ExitSupervisorFailed}, nil
		}
		stdinCloser = stdinPipe
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		s.logger.Warn("supervisor: failed to spawn child", zap.String("command", command), zap.Error(err))
		metrics.SupervisorFailures.Inc()
		return domain.ProcessOutcome{ExitCode: domain.ExitSupervisorFailed}, nil
	}

	// Feed stdin concurrently with output capture so writing never blocks draining.
	var stdinWg sync.WaitGroup
	if stdinCloser != nil {
		stdinWg.Add(1)
		go func() {
			defer stdinWg.Done()
			_, _ = stdinCloser.Write(stdinBytes)
			_ = stdinCloser.Close()
		}()
	}

	var (
		mu             sync.Mutex
		memoryExceeded bool
		timedOut       bool
	)

	watchdogCtx, cancelWatchdogs := context.WithCancel(context.Background())
	defer cancelWatchdogs()

	var wg sync.WaitGroup

	// Memory watchdog: sample RSS every 250ms after a 100ms warm-up.
	wg.Add(1)
	go func() {
		defer wg.Done()
		timer := time.NewTimer(memoryWarmup)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-watchdogCtx.Done():
			return
		}

		ticker := time.NewTicker(memoryPollPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-watchdogCtx.Done():
				return
			case <-ticker.C:
				rss, err := readRSSBytes(cmd.Process)
				if err != nil {
					continue
				}
				limitBytes := int64(maxMemoryMb) * 1024 * 1024
				if rss > limitBytes {
					mu.Lock()
					memoryExceeded = true
					mu.Unlock()
					killProcessTree(cmd.Process)
					return
				}
			}
		}
	}()

	// Deadline watchdog: wait up to timeLimitSec for the child.
	childDone := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		childDone <- cmd.Wait()
	}()

	select {
	case <-time.After(time.Duration(timeLimitSec) * time.Second):
		mu.Lock()
		alreadyMemoryExceeded := memoryExceeded
		if !alreadyMemoryExceeded {
			timedOut = true
		}
		mu.Unlock()
		if !alreadyMemoryExceeded {
			killProcessTree(cmd.Process)
		}
		<-childDone
	case waitErr := <-childDone:
		_ = waitErr
	case <-ctx.Done():
		killProcessTree(cmd.Process)
		<-childDone
	}

	cancelWatchdogs()
	wg.Wait()
	stdinWg.Wait()

	elapsed := time.Since(start)

	mu.Lock()
	finalMemoryExceeded := memoryExceeded
	finalTimedOut := timedOut && !memoryExceeded
	mu.Unlock()

	outcome := domain.ProcessOutcome{
		Stdout:         stdout.String(),
		Stderr:         stderr.String(),
		DurationMs:     elapsed.Milliseconds(),
		MemoryExceeded: finalMemoryExceeded,
		TimedOut:       finalTimedOut,
	}

	switch {
	case finalMemoryExceeded:
		outcome.ExitCode = domain.ExitKilledByMemory
		outcome.TimedOut = false
	case finalTimedOut:
		outcome.ExitCode = domain.ExitKilledByDeadline
	default:
		exitCode := cmd.ProcessState.ExitCode()
		outcome.ExitCode = exitCode
		if exitCode == 124 || exitCode == 137 {
			outcome.TimedOut = true
			outcome.ExitCode = domain.ExitKilledByDeadline
		}
	}

	s.logger.Debug("supervisor: run complete",
		zap.String("command", command),
		zap.Duration("elapsed", elapsed),
		zap.Int("exit_code", outcome.ExitCode),
		zap.Bool("timed_out", outcome.TimedOut),
		zap.Bool("memory_exceeded", outcome.MemoryExceeded),
	)

	return outcome, nil
}

// WrapWithTimeout builds the argv for the OS `timeout` deadline helper
// described in spec.md §4.3: `timeout --signal=SIGKILL Ns <cmd...>`,
// where N is the (already globally-clamped) per-case time limit in
// whole seconds. The supervisor's own deadline is set by the caller to
// N+2s so the OS helper fires first when both are armed.
func WrapWithTimeout(timeLimitSec int, command string, args []string) (string, []string) {
	n := timeLimitSec
	if n < 1 {
		n = 1
	}
	wrapped := append([]string{"--signal=SIGKILL", fmt.Sprintf("%ds", n), command}, args...)
	return "timeout", wrapped
}

// SupervisorDeadlineSeconds returns N+deadlineGraceSecs, the supervisor's
// own wall-clock ceiling when the OS timeout wrapper is also armed for N.
func SupervisorDeadlineSeconds(timeLimitSec int) int {
	n := timeLimitSec
	if n < 1 {
		n = 1
	}
	return n + deadlineGraceSecs
}

// IsOSTimeoutExitCode reports whether code is one of the exit codes the
// `timeout` wrapper uses to signal it killed the child (spec.md §4.1 step 3).
func IsOSTimeoutExitCode(code int) bool {
	return code == 124 || code == 137
}
