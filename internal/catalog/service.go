package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"becat/internal/errors"
	"becat/internal/logging"
)

// Service orchestrates catalog searches: it decides which patterns to search
// in which order, hands the whole plan to the shell in one blocking
// invocation, and folds the output into a single Outcome.
type Service struct {
	builder ScriptBuilder
	invoker Invoker
	logger  *logging.Logger
}

// NewService creates a search service
func NewService(builder ScriptBuilder, invoker Invoker, logger *logging.Logger) *Service {
	return &Service{
		builder: builder,
		invoker: invoker,
		logger:  logger,
	}
}

// Search runs one catalog search. The returned Outcome is always populated;
// the error is non-nil only for invocation- or parse-level failures (attempt
// failures are absorbed into Outcome.Diagnostics).
func (s *Service) Search(ctx context.Context, req SearchRequest) (*Outcome, error) {
	start := time.Now()

	variants := GenerateVariants(req.Path)
	toggles := DirectoryToggles(req.PathIsDirectory)
	plan := PlanAttempts(variants, toggles, req.AgentName != "")

	s.logger.Debug("Planned catalog search", map[string]interface{}{
		"path":     req.Path,
		"agent":    req.AgentName,
		"variants": len(variants),
		"attempts": len(plan),
	})

	script := s.builder.Build(req, variants, plan)

	inv, err := s.invoker.Invoke(ctx, script)
	if err != nil {
		code := errors.ShellUnavailable
		if stderrors.Is(err, context.DeadlineExceeded) {
			code = errors.Timeout
		}
		becErr := errors.New(code, "could not invoke management shell", err)
		return failedOutcome(becErr.Error(), inv, script), becErr
	}

	if inv.ExitCode != 0 {
		msg := strings.TrimSpace(inv.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("shell exited with code %d", inv.ExitCode)
		}
		becErr := errors.New(errors.InvocationFailed, msg, nil)
		return failedOutcome(msg, inv, script), becErr
	}

	stdout := strings.TrimSpace(inv.Stdout)
	if stdout == "" {
		// No output means an empty result set, not a failure
		return &Outcome{Success: true, Entries: []Entry{}}, nil
	}

	doc, found := ExtractJSON(stdout)
	if !found {
		const msg = "No JSON output from shell."
		becErr := errors.New(errors.OutputParseFailed, msg, nil)
		return failedOutcome(msg, inv, script), becErr
	}

	p, err := parsePayload(doc)
	if err != nil {
		const msg = "Failed to parse JSON from shell output."
		becErr := errors.New(errors.OutputParseFailed, msg, err)
		return failedOutcome(msg, inv, script), becErr
	}

	outcome := aggregate(p, inv)

	s.logger.Info("Catalog search completed", map[string]interface{}{
		"path":       req.Path,
		"matches":    outcome.Count(),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return outcome, nil
}

// aggregate packages parsed entries and diagnostics into the final Outcome,
// attaching shell-level execution diagnostics alongside whatever the script
// reported. Nothing is filtered or summarized.
func aggregate(p *payload, inv *Invocation) *Outcome {
	diag := p.Diagnostics
	if diag == nil {
		diag = map[string]interface{}{}
	}
	diag["shell"] = map[string]interface{}{
		"binary":   inv.Binary,
		"exitCode": inv.ExitCode,
		"stderr":   inv.Stderr,
	}

	entries := p.Entries
	if entries == nil {
		entries = []Entry{}
	}

	return &Outcome{
		Success:     true,
		Entries:     entries,
		Diagnostics: diag,
		Raw:         inv.Stdout,
	}
}

// failedOutcome builds the failure-shaped Outcome with raw execution state
// preserved for debugging.
func failedOutcome(msg string, inv *Invocation, script string) *Outcome {
	diag := map[string]interface{}{}
	shell := map[string]interface{}{
		"script": script,
	}
	if inv != nil {
		shell["binary"] = inv.Binary
		shell["exitCode"] = inv.ExitCode
		shell["stderr"] = inv.Stderr
		diag["rawStdout"] = inv.Stdout
	}
	diag["shell"] = shell

	outcome := &Outcome{
		Success:     false,
		Entries:     []Entry{},
		Error:       msg,
		Diagnostics: diag,
	}
	if inv != nil {
		outcome.Raw = inv.Stdout
	}
	return outcome
}
