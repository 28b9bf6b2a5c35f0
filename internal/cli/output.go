package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"bridgen/internal/parser"
	"bridgen/internal/resolve"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitSourceError  = 1 // source fails resolution (unsupported construct, syntax error)
	ExitCommandError = 2 // command error (missing files, bad flags, I/O)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // exit code (ExitSourceError or ExitCommandError)
	Message string
	Err     error // underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSourceError (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSourceError
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // generic/unknown error
	ErrCodeReadFailed  = "E002" // source read error
	ErrCodeNotFound    = "E005" // path not found
	ErrCodeWriteFailed = "E007" // file write error
	ErrCodeConfig      = "E010" // option resolution failed

	// Source resolution errors
	ErrCodeUnsupportedType = "E101" // type matches no recognized production
	ErrCodeNestedOptional  = "E102" // Option directly wrapping Option
	ErrCodeBadReturnShape  = "E103" // return type not Result-shaped
	ErrCodeBadStructShape  = "E104" // struct neither named nor positional
	ErrCodeSyntax          = "E105" // construct outside the parsed subset
)

// MapSourceError maps a parse or resolution failure to its error code and
// message. Anything else gets the generic code.
func MapSourceError(err error) (string, string) {
	var unsupportedErr *resolve.UnsupportedError
	if errors.As(err, &unsupportedErr) {
		switch unsupportedErr.Reason {
		case resolve.ReasonNestedOptional:
			return ErrCodeNestedOptional, unsupportedErr.Error()
		case resolve.ReasonBadReturnShape:
			return ErrCodeBadReturnShape, unsupportedErr.Error()
		case resolve.ReasonBadStructShape:
			return ErrCodeBadStructShape, unsupportedErr.Error()
		default:
			return ErrCodeUnsupportedType, unsupportedErr.Error()
		}
	}
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		return ErrCodeSyntax, syntaxErr.Error()
	}
	return ErrCodeGeneric, err.Error()
}

// Success/failure glyphs, colored in text mode.
var (
	glyphOK   = color.New(color.FgGreen).Sprint("✓")
	glyphFail = color.New(color.FgRed).Sprint("✗")
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E101", ...
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetEscapeHTML(false)
		return enc.Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetEscapeHTML(false)
		return enc.Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "%s Error [%s]: %s\n", glyphFail, code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting
// JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
