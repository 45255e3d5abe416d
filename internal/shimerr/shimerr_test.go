package shimerr

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"testing"
)

const helperEnv = "SHIMERR_HELPER_EXIT"

// TestHelperProcess is re-executed by tests that need a real child exit status.
func TestHelperProcess(t *testing.T) {
	raw := os.Getenv(helperEnv)
	if raw == "" {
		return
	}
	code, _ := strconv.Atoi(raw)
	os.Exit(code)
}

func runHelper(t *testing.T, code int) error {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	cmd.Env = append(os.Environ(), helperEnv+"="+strconv.Itoa(code))
	return cmd.Run()
}

func TestFromRunNil(t *testing.T) {
	if err := FromRun(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := FromRun(runHelper(t, 0)); err != nil {
		t.Fatalf("expected nil for exit 0, got %v", err)
	}
}

func TestFromRunExitCode(t *testing.T) {
	err := FromRun(runHelper(t, 3))
	var shimErr *Error
	if !errors.As(err, &shimErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if shimErr.Kind != KindCode {
		t.Fatalf("expected KindCode, got %v", shimErr.Kind)
	}
	if shimErr.Code != 3 {
		t.Fatalf("expected code 3, got %d", shimErr.Code)
	}
	if shimErr.Error() != "exit status 3" {
		t.Fatalf("unexpected message %q", shimErr.Error())
	}
	if got := ExitCode(err); got != 3 {
		t.Fatalf("ExitCode = %d, want 3", got)
	}
}

func TestFromRunSpawnFailure(t *testing.T) {
	cause := exec.Command("/nonexistent/nvmd-shim-test-binary").Run()
	if cause == nil {
		t.Fatal("expected spawn error")
	}
	err := FromRun(cause)
	var shimErr *Error
	if !errors.As(err, &shimErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if shimErr.Kind != KindMessage {
		t.Fatalf("expected KindMessage, got %v", shimErr.Kind)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected error to wrap cause")
	}
	if got := ExitCode(err); got != 1 {
		t.Fatalf("ExitCode = %d, want 1", got)
	}
}

func TestFromRunKeepsExistingError(t *testing.T) {
	original := Message("boom", nil)
	if got := FromRun(original); got != original {
		t.Fatalf("expected the same error back, got %v", got)
	}
}

func TestErrorMessageFallsBackToCause(t *testing.T) {
	cause := errors.New("no such file")
	err := Message("", cause)
	if err.Error() != "no such file" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("ExitCode(nil) = %d", got)
	}
	if got := ExitCode(errors.New("plain")); got != 1 {
		t.Fatalf("ExitCode(plain) = %d", got)
	}
	if got := ExitCode(Code(7)); got != 7 {
		t.Fatalf("ExitCode(Code(7)) = %d", got)
	}
	if got := ExitCode(Code(0)); got != 1 {
		t.Fatalf("ExitCode(Code(0)) = %d", got)
	}
}
