package bemcli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"becat/internal/catalog"
	"becat/internal/config"
	"becat/internal/logging"
)

// Runner executes scripts through a PowerShell host process. It implements
// catalog.Invoker.
type Runner struct {
	binary   string
	fallback string
	timeout  time.Duration
	logger   *logging.Logger
}

// NewRunner creates a runner from the shell configuration
func NewRunner(cfg config.ShellConfig, logger *logging.Logger) *Runner {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cfg.TimeoutSeconds <= 0 {
		timeout = 120 * time.Second
	}
	return &Runner{
		binary:   cfg.Binary,
		fallback: cfg.FallbackBinary,
		timeout:  timeout,
		logger:   logger,
	}
}

// ResolveBinary returns the PowerShell binary that will be used, preferring
// the configured primary and falling back to the alternate host.
func (r *Runner) ResolveBinary() (string, error) {
	if path, err := exec.LookPath(r.binary); err == nil {
		return path, nil
	}
	if r.fallback != "" {
		if path, err := exec.LookPath(r.fallback); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no PowerShell host found (tried %q, %q)", r.binary, r.fallback)
}

// Invoke writes the script to a temporary .ps1 file and runs it to
// completion. Non-zero exit is not an error here: the invocation result
// carries the exit code and both output streams for the caller to judge.
func (r *Runner) Invoke(ctx context.Context, script string) (*catalog.Invocation, error) {
	binary, err := r.ResolveBinary()
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "becat-*.ps1")
	if err != nil {
		return nil, fmt.Errorf("failed to create script file: %w", err)
	}
	scriptPath := tmp.Name()
	defer os.Remove(scriptPath)

	if _, err := tmp.WriteString(script); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write script file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write script file: %w", err)
	}

	runCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, binary, "-NoProfile", "-ExecutionPolicy", "Bypass", "-File", scriptPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		r.logger.Warn("Shell invocation timed out", map[string]interface{}{
			"binary":  binary,
			"elapsed": elapsed.String(),
		})
		return nil, fmt.Errorf("shell invocation timed out after %s: %w", elapsed.Round(time.Millisecond), context.DeadlineExceeded)
	}

	inv := &catalog.Invocation{
		Binary: binary,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr != nil {
		exitErr, ok := runErr.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("failed to run %s: %w", binary, runErr)
		}
		inv.ExitCode = exitErr.ExitCode()
	}

	r.logger.Debug("Shell invocation complete", map[string]interface{}{
		"binary":   binary,
		"exitCode": inv.ExitCode,
		"elapsed":  elapsed.String(),
	})

	return inv, nil
}
