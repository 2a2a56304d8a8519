//go:build linux

package supervisor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// childProcAttr puts the child in its own process group so the whole
// descendant tree can be signalled at once (spec.md §4.1: "signal-kill
// the child including the whole descendant tree").
func childProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killProcessTree signals the whole process group, matching the
// teacher's sandbox.go handling of nsjail's child tree.
func killProcessTree(p *os.Process) {
	if p == nil {
		return
	}
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err != nil {
		_ = p.Kill()
	}
}

// readRSSBytes sums the resident set size of every process in the
// child's process group, not just the child itself. The child is
// launched under Setpgid (childProcAttr), so its pgid equals its own
// pid; a wrapper like the OS `timeout` helper forks the actual solution
// process as a child that inherits that same pgid, and the solution's
// own forked workers do too. Reading only /proc/<pid>/status for the
// top-level pid (e.g. timeout's own tiny, constant RSS) would never see
// the descendant that is actually running the submission. Returns an
// error if no process in the group could be read — the caller treats
// that as "skip this sample", not as a memory violation.
func readRSSBytes(p *os.Process) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("no process")
	}
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, err
	}
	var total int64
	var found bool
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		pgrp, err := processGroupID(pid)
		if err != nil || pgrp != p.Pid {
			continue
		}
		rss, err := processRSSBytes(pid)
		if err != nil {
			continue
		}
		total += rss
		found = true
	}
	if !found {
		return 0, fmt.Errorf("no readable process in group %d", p.Pid)
	}
	return total, nil
}

// processGroupID reads the pgrp field out of /proc/<pid>/stat. The comm
// field (2nd, parenthesised) may itself contain spaces or parentheses,
// so parsing starts after the last ')' rather than splitting naively.
func processGroupID(pid int) (int, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, err
	}
	s := string(data)
	idx := strings.LastIndexByte(s, ')')
	if idx < 0 {
		return 0, fmt.Errorf("malformed stat line")
	}
	fields := strings.Fields(s[idx+1:])
	// fields[0]=state fields[1]=ppid fields[2]=pgrp
	if len(fields) < 3 {
		return 0, fmt.Errorf("malformed stat fields")
	}
	return strconv.Atoi(fields[2])
}

// processRSSBytes reads one pid's VmRSS from /proc/<pid>/status.
func processRSSBytes(pid int) (int64, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return 0, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "VmRSS:") {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return 0, fmt.Errorf("malformed VmRSS line")
			}
			kb, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return 0, err
			}
			return kb * 1024, nil
		}
	}
	return 0, fmt.Errorf("VmRSS not found")
}
