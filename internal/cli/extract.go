package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bridgen/internal/cache"
	"bridgen/internal/config"
	"bridgen/internal/ir"
	"bridgen/internal/parser"
	"bridgen/internal/resolve"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Input      string
	Output     string
	ConfigFile string
	CrateDir   string
	ClassName  string
	CacheDir   string
	Pretty     bool
}

// ExtractMeta describes the extraction that produced an IR document.
type ExtractMeta struct {
	ToolVersion string `json:"tool_version"`
	IRVersion   string `json:"ir_version"`
	ClassName   string `json:"class_name"`
	Source      string `json:"source"`
	SourceHash  string `json:"source_hash"`
	Cached      bool   `json:"cached"`
}

// ExtractEnvelope is the document written to the output path.
type ExtractEnvelope struct {
	Meta ExtractMeta `json:"meta"`
	IR   *ir.File    `json:"ir"`
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract binding IR from a Rust API source file",
		Long: `Extract the language-neutral interface representation from one Rust source file.

The public functions and structs are resolved into the IR document, which is
written to the output path together with extraction metadata. Unset options
are inferred: the crate directory by walking up to Cargo.toml, the class name
from the crate's package name, the output path as a sibling of the input.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // we handle our own error output
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "path of the Rust input file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "path of the output IR document")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "path of a YAML config file")
	cmd.Flags().StringVar(&opts.CrateDir, "crate-dir", "", "crate directory of the Rust project")
	cmd.Flags().StringVar(&opts.ClassName, "class-name", "", "generated client class name")
	cmd.Flags().StringVar(&opts.CacheDir, "cache-dir", "", "directory for the extraction cache (empty disables)")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "indent the output document")

	return cmd
}

func runExtract(opts *ExtractOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	copts, err := resolveOptions(opts.ConfigFile, &config.Raw{
		Input:     opts.Input,
		Output:    opts.Output,
		CrateDir:  opts.CrateDir,
		ClassName: opts.ClassName,
		CacheDir:  opts.CacheDir,
		Pretty:    opts.Pretty,
	}, formatter)
	if err != nil {
		return err
	}

	source, err := ReadSource(copts.Input)
	if err != nil {
		srcErr := err.(*SourceError)
		return outputError(formatter, ExitCommandError, srcErr.Code, srcErr.Message)
	}
	hash := ir.SourceHash(source)
	formatter.VerboseLog("Read %d byte(s) from %s", len(source), copts.Input)

	// Cache failures degrade to a cold extraction, never abort the run.
	var store *cache.Cache
	if copts.CacheDir != "" {
		store, err = cache.Open(copts.CacheDir)
		if err != nil {
			slog.Warn("extraction cache unavailable", "dir", copts.CacheDir, "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	var doc *ir.File
	cached := false
	if store != nil {
		env, hit, err := store.Get(hash)
		if err != nil {
			slog.Warn("cache lookup failed", "error", err)
		} else if hit {
			var decoded ir.File
			if err := json.Unmarshal(env.Document, &decoded); err != nil {
				slog.Warn("discarding undecodable cache entry", "error", err)
			} else {
				doc = &decoded
				cached = true
				formatter.VerboseLog("Cache hit for %s", hash)
			}
		}
	}

	if doc == nil {
		tree, err := parser.ParseFile(copts.Input, string(source))
		if err != nil {
			return outputSourceFailure(formatter, err)
		}
		doc, err = resolve.Resolve(tree, source)
		if err != nil {
			return outputSourceFailure(formatter, err)
		}

		if store != nil {
			compact, err := ir.MarshalStable(doc, false)
			if err == nil {
				err = store.Put(hash, &cache.Envelope{ClassName: copts.ClassName, Document: compact})
			}
			if err != nil {
				slog.Warn("cache store failed", "error", err)
			}
		}
	}

	envelope := &ExtractEnvelope{
		Meta: ExtractMeta{
			ToolVersion: ir.ToolVersion,
			IRVersion:   ir.IRVersion,
			ClassName:   copts.ClassName,
			Source:      copts.Input,
			SourceHash:  hash,
			Cached:      cached,
		},
		IR: doc,
	}

	data, err := ir.MarshalStable(envelope, copts.Pretty)
	if err != nil {
		return outputError(formatter, ExitCommandError, ErrCodeGeneric, fmt.Sprintf("encoding IR document: %v", err))
	}
	if err := os.WriteFile(copts.Output, data, 0o644); err != nil {
		return outputError(formatter, ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
	}

	return outputExtractSuccess(formatter, envelope, copts.Output)
}

// outputExtractSuccess outputs a successful extraction.
func outputExtractSuccess(formatter *OutputFormatter, envelope *ExtractEnvelope, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(envelope)
	}

	fmt.Fprintf(formatter.Writer, "%s Extracted %d function(s), %d struct(s)\n",
		glyphOK, len(envelope.IR.Funcs), len(envelope.IR.StructPool))

	for _, fn := range envelope.IR.Funcs {
		formatter.VerboseLog("  %s [%s]", fn.Signature(), fn.Mode)
	}
	if envelope.Meta.Cached {
		fmt.Fprintln(formatter.Writer, "Served from extraction cache")
	}
	fmt.Fprintf(formatter.Writer, "Wrote IR for class %s to %s\n", envelope.Meta.ClassName, outputFile)

	return nil
}

// outputSourceFailure reports a parse or resolution failure. Source
// failures exit with code 1: the command ran, the source cannot cross the
// boundary.
func outputSourceFailure(formatter *OutputFormatter, err error) error {
	code, message := MapSourceError(err)
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitSourceError, fmt.Sprintf("%s: %s", code, message))
}

// outputError reports a command-level failure and returns the matching
// ExitError.
func outputError(formatter *OutputFormatter, exitCode int, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}

// resolveOptions merges flag values over the optional YAML config file and
// runs fallback inference. An explicitly named config file must exist; the
// default bridgen.yaml is picked up only when present.
func resolveOptions(configFile string, flags *config.Raw, formatter *OutputFormatter) (*config.Options, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, outputError(formatter, ExitCommandError, ErrCodeGeneric, fmt.Sprintf("getting working directory: %v", err))
	}

	var fileRaw *config.Raw
	switch {
	case configFile != "":
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, outputError(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("config file not found: %s", configFile))
		}
		fileRaw, err = config.LoadFile(configFile)
		if err != nil {
			return nil, outputError(formatter, ExitCommandError, ErrCodeConfig, err.Error())
		}
	default:
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			fileRaw, err = config.LoadFile(config.DefaultFileName)
			if err != nil {
				return nil, outputError(formatter, ExitCommandError, ErrCodeConfig, err.Error())
			}
		}
	}

	copts, err := config.Resolve(config.Merge(fileRaw, flags), cwd)
	if err != nil {
		return nil, outputError(formatter, ExitCommandError, ErrCodeConfig, err.Error())
	}
	return copts, nil
}
