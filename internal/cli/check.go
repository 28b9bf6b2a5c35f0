package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bridgen/internal/config"
	"bridgen/internal/parser"
	"bridgen/internal/resolve"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Input      string
	ConfigFile string
}

// CheckResult holds check results for JSON output.
type CheckResult struct {
	Valid   bool      `json:"valid"`
	Funcs   int       `json:"funcs"`
	Structs int       `json:"structs"`
	Error   *CLIError `json:"error,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that a Rust API source file resolves cleanly",
		Long: `Parse and resolve a Rust API source file without writing any output.

Faster feedback than extract while iterating on an API surface: reports the
first unsupported construct, or the count of functions and structs that
would be extracted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // we handle our own error output
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "path of the Rust input file")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "path of a YAML config file")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	input, err := checkInputPath(opts, formatter)
	if err != nil {
		return err
	}

	source, err := ReadSource(input)
	if err != nil {
		srcErr := err.(*SourceError)
		return outputError(formatter, ExitCommandError, srcErr.Code, srcErr.Message)
	}

	tree, err := parser.ParseFile(input, string(source))
	if err != nil {
		return outputCheckFailure(formatter, err)
	}
	doc, err := resolve.Resolve(tree, source)
	if err != nil {
		return outputCheckFailure(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(CheckResult{
			Valid:   true,
			Funcs:   len(doc.Funcs),
			Structs: len(doc.StructPool),
		})
	}
	fmt.Fprintf(formatter.Writer, "%s Source is valid: %d function(s), %d struct(s)\n",
		glyphOK, len(doc.Funcs), len(doc.StructPool))
	return nil
}

// checkInputPath resolves the input path from the flag or the config file.
// check needs no crate inference, so full option resolution is skipped.
func checkInputPath(opts *CheckOptions, formatter *OutputFormatter) (string, error) {
	input := opts.Input
	if input == "" {
		configFile := opts.ConfigFile
		if configFile == "" {
			if _, err := os.Stat(config.DefaultFileName); err == nil {
				configFile = config.DefaultFileName
			}
		}
		if configFile != "" {
			fileRaw, err := config.LoadFile(configFile)
			if err != nil {
				return "", outputError(formatter, ExitCommandError, ErrCodeConfig, err.Error())
			}
			input = fileRaw.Input
		}
	}
	if input == "" {
		return "", outputError(formatter, ExitCommandError, ErrCodeConfig, "input is required")
	}

	if !filepath.IsAbs(input) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", outputError(formatter, ExitCommandError, ErrCodeGeneric, fmt.Sprintf("getting working directory: %v", err))
		}
		input = filepath.Join(cwd, input)
	}
	return input, nil
}

// outputCheckFailure reports a parse or resolution failure from check.
func outputCheckFailure(formatter *OutputFormatter, err error) error {
	code, message := MapSourceError(err)
	if formatter.Format == "json" {
		enc := json.NewEncoder(formatter.Writer)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(CLIResponse{
			Status: "error",
			Data:   CheckResult{Valid: false},
			Error:  &CLIError{Code: code, Message: message},
		})
		return NewExitError(ExitSourceError, fmt.Sprintf("%s: %s", code, message))
	}
	fmt.Fprintf(formatter.Writer, "%s Source is invalid\n", glyphFail)
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, message)
	return NewExitError(ExitSourceError, fmt.Sprintf("%s: %s", code, message))
}
