package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the operation itself failed
	ExitCommandError = 2 // bad flags, arguments or config
)

// Error codes reported in structured output.
const (
	ErrCodeInvalidType  = "E001"
	ErrCodeInvalidValue = "E002"
	ErrCodeIO           = "E003"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
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

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err, ExitFailure when err is not an
// ExitError.
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

// OutputFormatter renders command results as text, JSON or YAML.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// Response is the envelope for structured output.
type Response struct {
	Status string       `json:"status" yaml:"status"`
	Data   any          `json:"data,omitempty" yaml:"data,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty" yaml:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Success writes data. Text output is produced by text.
func (f *OutputFormatter) Success(data any, text func(w io.Writer)) error {
	switch f.Format {
	case "json":
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	case "yaml":
		return f.yaml(Response{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

// Fail reports an error in the configured format and returns it as an
// ExitError with code.
func (f *OutputFormatter) Fail(exitCode int, errCode string, err error) error {
	msg := err.Error()
	switch f.Format {
	case "json":
		_ = json.NewEncoder(f.Writer).Encode(Response{Status: "error", Error: &ErrorDetail{Code: errCode, Message: msg}})
	case "yaml":
		_ = f.yaml(Response{Status: "error", Error: &ErrorDetail{Code: errCode, Message: msg}})
	default:
		fmt.Fprintf(f.errWriter(), "Error [%s]: %s\n", errCode, msg)
	}
	return WrapExitError(exitCode, errCode, err)
}

func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.errWriter(), format+"\n", args...)
}

func (f *OutputFormatter) yaml(v any) error {
	enc := yaml.NewEncoder(f.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// writeTable prints rows under header with columns padded to their widest
// cell plus two spaces. The last column is not padded.
func writeTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	line := func(cells []string) {
		var sb strings.Builder
		for i, cell := range cells {
			if i == len(cells)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
		}
		fmt.Fprintln(w, sb.String())
	}
	line(header)
	for _, row := range rows {
		line(row)
	}
}
