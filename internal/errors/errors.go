// Package errors defines stable error codes and the becat error type.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ShellUnavailable indicates the management shell binary could not be started
	ShellUnavailable ErrorCode = "SHELL_UNAVAILABLE"
	// InvocationFailed indicates the shell ran but exited non-zero
	InvocationFailed ErrorCode = "INVOCATION_FAILED"
	// OutputParseFailed indicates the shell exited cleanly but produced no parseable JSON
	OutputParseFailed ErrorCode = "OUTPUT_PARSE_FAILED"
	// Timeout indicates the shell invocation exceeded its time budget
	Timeout ErrorCode = "TIMEOUT"
	// AgentNotFound indicates a named agent server could not be resolved
	AgentNotFound ErrorCode = "AGENT_NOT_FOUND"
	// RequestInvalid indicates a malformed or incomplete search request
	RequestInvalid ErrorCode = "REQUEST_INVALID"
	// HistoryUnavailable indicates the search journal could not be opened or queried
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// InstallTool suggests installing a tool
	InstallTool FixActionType = "install-tool"
	// EditConfig suggests changing a configuration value
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	Tool        string        `json:"tool,omitempty"`
}

// BecatError represents a becat error with code, message, and suggestions
type BecatError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new BecatError
func New(code ErrorCode, message string, cause error) *BecatError {
	return &BecatError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *BecatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *BecatError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *BecatError) WithDetails(details interface{}) *BecatError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ShellUnavailable: {
		{
			Type:        InstallTool,
			Tool:        "pwsh",
			Description: "Install PowerShell, or point shell.binary at an existing install",
		},
		{
			Type:        RunCommand,
			Command:     "becat doctor",
			Safe:        true,
			Description: "Check shell binary resolution",
		},
	},
	InvocationFailed: {
		{
			Type:        EditConfig,
			Description: "Verify shell.modulePath points at the BEMCLI module directory",
		},
	},
	Timeout: {
		{
			Type:        EditConfig,
			Description: "Raise shell.timeoutSeconds for large catalogs",
		},
	},
	HistoryUnavailable: {
		{
			Type:        RunCommand,
			Command:     "becat doctor",
			Safe:        true,
			Description: "Check journal path and permissions",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
