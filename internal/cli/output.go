package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/deploykit/internal/validate"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // warnings found
	ExitCommandError = 2 // bad paths, unknown kinds, broken definitions
)

// ExitError carries the process exit code of a failed command. Its message
// has already been reported through the formatter.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// NewExitError creates an ExitError.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode maps a command error to a process exit code. Errors that are
// not an ExitError exit with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text or as JSON envelopes.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose output; defaults to Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError describes why a command failed. Command errors carry the source
// position of bad definitions; validation failures carry a warning summary.
type CLIError struct {
	Code     string          `json:"code"` // "E005", "W201", ...
	Message  string          `json:"message"`
	Position string          `json:"position,omitempty"` // file:line:col
	Summary  *WarningSummary `json:"summary,omitempty"`
}

// WarningSummary counts the warnings of a validation run by severity.
type WarningSummary struct {
	Total  int `json:"total"`
	Files  int `json:"files"` // files with at least one warning
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func summarize(warnings validate.WarningList) *WarningSummary {
	return &WarningSummary{
		Total:  len(warnings),
		Files:  len(warnings.Group()),
		High:   warnings.Count(validate.SeverityHigh),
		Medium: warnings.Count(validate.SeverityMedium),
		Low:    warnings.Count(validate.SeverityLow),
	}
}

// Success writes a successful result.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error writes a command error.
func (f *OutputFormatter) Error(e CLIError) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: &e})
	}
	if e.Position != "" {
		fmt.Fprintf(f.Writer, "Error [%s]: %s: %s\n", e.Code, e.Position, e.Message)
		return nil
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", e.Code, e.Message)
	return nil
}

// Failure writes the indented JSON envelope of a run that completed but found
// problems. data holds the full result.
func (f *OutputFormatter) Failure(e CLIError, data any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Status: "error", Data: data, Error: &e})
}

// VerboseLog writes a diagnostic line when verbose output is on.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the writer for diagnostics, so JSON on Writer stays
// parseable.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
