package queuectl_test

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/queuectl/queuectl"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test commands assume a POSIX shell")
	}
}

func TestExecuteSuccess(t *testing.T) {
	requireShell(t)

	res := queuectl.Execute("echo hi", 5*time.Second)
	if !res.Success {
		t.Fatalf("expected success, got output %q", res.Output)
	}
	if res.Output != "hi" {
		t.Fatalf("expected output hi, got %q", res.Output)
	}
	if res.DurationMS < 0 {
		t.Fatalf("negative duration: %d", res.DurationMS)
	}
}

func TestExecuteFailure(t *testing.T) {
	requireShell(t)

	res := queuectl.Execute("false", 5*time.Second)
	if res.Success {
		t.Fatal("expected failure")
	}
}

func TestExecuteCombinesStderr(t *testing.T) {
	requireShell(t)

	res := queuectl.Execute("echo out; echo err 1>&2", 5*time.Second)
	if !res.Success {
		t.Fatal("expected success")
	}
	if !strings.Contains(res.Output, "out") || !strings.Contains(res.Output, "err") {
		t.Fatalf("expected combined output, got %q", res.Output)
	}
}

func TestExecuteTimeout(t *testing.T) {
	requireShell(t)

	res := queuectl.Execute("sleep 5", time.Second)
	if res.Success {
		t.Fatal("expected timeout failure")
	}
	if !strings.Contains(res.Output, "timed out after 1 seconds") {
		t.Fatalf("expected timeout message, got %q", res.Output)
	}
	if res.DurationMS < 900 {
		t.Fatalf("duration must include the timeout wait, got %dms", res.DurationMS)
	}
}

func TestExecuteSpawnError(t *testing.T) {
	requireShell(t)

	res := queuectl.Execute("/definitely/not/a/binary", 5*time.Second)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Output == "" {
		t.Fatal("expected an explanatory message")
	}
}
