// Package catalog implements the backup-catalog search orchestration: path
// variant expansion, attempt planning, shell invocation, and result
// aggregation.
package catalog

import (
	"context"
)

// SearchRequest describes one catalog search as submitted by a caller.
// Immutable once built.
type SearchRequest struct {
	// Path is the raw user-supplied path or wildcard pattern
	Path string `json:"path"`
	// AgentName optionally scopes the search to one named agent server
	AgentName string `json:"agent,omitempty"`
	// Recurse searches below directory matches
	Recurse bool `json:"recurse"`
	// PathIsDirectory marks the pattern as a directory path
	PathIsDirectory bool `json:"pathIsDirectory"`
}

// Entry is one catalog record returned by the vendor shell. The orchestration
// layer never interprets its fields beyond counting; rendering is downstream.
type Entry map[string]interface{}

// AttemptRecord captures the outcome of one executed search attempt.
// Exactly one record exists per executed (variant, directory-mode, scope)
// combination, successful or not.
type AttemptRecord struct {
	Name       string `json:"name"`
	Pattern    string `json:"pattern"`
	Success    bool   `json:"success"`
	MatchCount int    `json:"count"`
	Error      string `json:"error,omitempty"`
}

// Scope identifies which agent set a planned attempt runs against
type Scope string

const (
	// ScopeAgent runs against the one agent named in the request
	ScopeAgent Scope = "agent"
	// ScopeAllAgents fans out across every registered agent
	ScopeAllAgents Scope = "all_agents"
)

// PlannedAttempt is one (pattern, directory-mode, scope) combination the
// orchestrator has decided to execute, in order.
type PlannedAttempt struct {
	// Name tags the attempt in diagnostics, e.g. "all_agents_dir=true"
	Name string `json:"name"`
	// Pattern is the path variant searched
	Pattern string `json:"pattern"`
	// Directory is the directory-mode toggle for this attempt
	Directory bool `json:"directory"`
	// Scope selects the agent set
	Scope Scope `json:"scope"`
}

// Outcome is the aggregate result of one search request. Success reflects
// only whether the shell could be invoked and its output parsed; individual
// attempt failures live in Diagnostics.
type Outcome struct {
	Success     bool                   `json:"success"`
	Entries     []Entry                `json:"results"`
	Error       string                 `json:"error,omitempty"`
	Diagnostics map[string]interface{} `json:"diagnostics,omitempty"`
	// Raw is the unprocessed shell stdout, kept for journaling
	Raw string `json:"-"`
}

// Count returns the number of accumulated entries
func (o *Outcome) Count() int {
	return len(o.Entries)
}

// Invocation is the raw result of one blocking shell invocation
type Invocation struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// Binary is the shell binary actually used after fallback resolution
	Binary string
}

// Invoker runs a prepared script through the vendor management shell once and
// returns its raw output. Implementations own process spawning, binary
// fallback, and the timeout budget.
type Invoker interface {
	Invoke(ctx context.Context, script string) (*Invocation, error)
}

// ScriptBuilder renders a search request plus its planned attempts into a
// script the Invoker can execute.
type ScriptBuilder interface {
	Build(req SearchRequest, variants []string, plan []PlannedAttempt) string
}
