package bemcli

import (
	"context"
	"strings"
	"testing"
	"time"

	"becat/internal/config"
	"becat/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Format: logging.JSONFormat})
}

func TestNewRunnerTimeout(t *testing.T) {
	r := NewRunner(config.ShellConfig{TimeoutSeconds: 30}, testLogger())
	if r.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", r.timeout)
	}

	r = NewRunner(config.ShellConfig{}, testLogger())
	if r.timeout != 120*time.Second {
		t.Errorf("default timeout = %v, want 120s", r.timeout)
	}
}

func TestResolveBinaryNotFound(t *testing.T) {
	r := NewRunner(config.ShellConfig{
		Binary:         "becat-test-missing-primary",
		FallbackBinary: "becat-test-missing-fallback",
	}, testLogger())

	_, err := r.ResolveBinary()
	if err == nil {
		t.Fatal("expected error when no shell host exists")
	}
	if !strings.Contains(err.Error(), "becat-test-missing-primary") {
		t.Errorf("error does not name the primary binary: %v", err)
	}
	if !strings.Contains(err.Error(), "becat-test-missing-fallback") {
		t.Errorf("error does not name the fallback binary: %v", err)
	}
}

func TestInvokeFailsWithoutBinary(t *testing.T) {
	r := NewRunner(config.ShellConfig{
		Binary:         "becat-test-missing-primary",
		FallbackBinary: "becat-test-missing-fallback",
	}, testLogger())

	inv, err := r.Invoke(context.Background(), "Write-Output hi")
	if err == nil {
		t.Fatal("expected error when no shell host exists")
	}
	if inv != nil {
		t.Errorf("expected nil invocation, got %+v", inv)
	}
}
