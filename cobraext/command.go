// Package cobraext provides Cobra command factories for pathwalk.
// It isolates the github.com/spf13/cobra dependency (and the document
// loading / diagnostic rendering that only a CLI needs) so that users who
// don't need CLI integration never import it.
package cobraext

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/relux-works/pathwalk"
)

// parseOutputMode converts a string flag value to an OutputMode.
// "compact" maps to Compact; "json" maps to HumanReadable.
// Returns an error for unrecognized values.
func parseOutputMode(s string) (pathwalk.OutputMode, error) {
	switch strings.ToLower(s) {
	case "compact":
		return pathwalk.Compact, nil
	case "json":
		return pathwalk.HumanReadable, nil
	default:
		return 0, fmt.Errorf("unknown format %q: use \"json\" or \"compact\"", s)
	}
}

// loadDocument reads a JSON or YAML document from the named file, or from
// stdin when the name is "-" or empty. YAML is selected by the .yaml/.yml
// extension; everything else is parsed as JSON.
func loadDocument(name string, stdin io.Reader) (any, error) {
	var data []byte
	var err error
	if name == "" || name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var doc any
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse input: %w", err)
		}
	}
	return doc, nil
}

// loadRecord loads a document and requires it to be a record at the top level.
func loadRecord(name string, stdin io.Reader) (map[string]any, error) {
	doc, err := loadDocument(name, stdin)
	if err != nil {
		return nil, err
	}
	rec, ok := pathwalk.AsRecord(doc)
	if !ok {
		return nil, fmt.Errorf("%s: top-level value is %T, want an object", name, doc)
	}
	return rec, nil
}

// renderParseError writes the offending source line with a caret under the
// error position. The caret line is colored when the writer supports it.
func renderParseError(w io.Writer, input string, perr *pathwalk.ParseError) {
	lines := strings.Split(input, "\n")
	if perr.Pos.Line < 1 || perr.Pos.Line > len(lines) {
		return
	}
	fmt.Fprintln(w, lines[perr.Pos.Line-1])
	caret := strings.Repeat(" ", perr.Pos.Column-1) + "^"
	color.New(color.FgRed, color.Bold).Fprintln(w, caret)
}

// EvalCommand creates an "eval" subcommand that parses a path expression
// and evaluates it against a JSON or YAML document. The document comes
// from --input (or stdin); --format is required and controls output.
func EvalCommand() *cobra.Command {
	var (
		input  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "eval <path>",
		Short: "Evaluate a path expression against a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutputMode(format)
			if err != nil {
				return err
			}
			doc, err := loadDocument(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			data, err := pathwalk.EvalFormatted(doc, args[0], mode)
			if err != nil {
				var perr *pathwalk.ParseError
				if errors.As(err, &perr) {
					renderParseError(cmd.ErrOrStderr(), args[0], perr)
				}
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&input, "input", "", `Document file (.json, .yaml, .yml); "-" or empty reads stdin`)
	cmd.Flags().StringVar(&format, "format", "", `Output format (required): "json" or "compact"`)
	_ = cmd.MarkFlagRequired("format")
	return cmd
}

// MergeCommand creates a "merge" subcommand that shallow-merges the given
// documents left to right and prints the result. Later files win.
func MergeCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "merge <file>...",
		Short: "Shallow-merge documents, last writer wins",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutputMode(format)
			if err != nil {
				return err
			}
			sources := make([]map[string]any, 0, len(args))
			for _, name := range args {
				rec, err := loadRecord(name, cmd.InOrStdin())
				if err != nil {
					return err
				}
				sources = append(sources, rec)
			}
			data, err := pathwalk.FormatResult(pathwalk.Merge(sources...), mode)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", `Output format (required): "json" or "compact"`)
	_ = cmd.MarkFlagRequired("format")
	return cmd
}

// ProjectCommand creates a "project" subcommand that evaluates several
// name=path pairs against one document and prints the assembled record.
func ProjectCommand() *cobra.Command {
	var (
		input  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "project <name=path>...",
		Short: "Project several path expressions into one record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutputMode(format)
			if err != nil {
				return err
			}
			fields := make(map[string]string, len(args))
			for _, arg := range args {
				name, path, ok := strings.Cut(arg, "=")
				if !ok || name == "" {
					return fmt.Errorf("invalid field %q: want name=path", arg)
				}
				fields[name] = path
			}
			doc, err := loadDocument(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			result, err := pathwalk.ProjectStrings(doc, fields)
			if err != nil {
				return err
			}
			data, err := pathwalk.FormatResult(result, mode)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&input, "input", "", `Document file (.json, .yaml, .yml); "-" or empty reads stdin`)
	cmd.Flags().StringVar(&format, "format", "", `Output format (required): "json" or "compact"`)
	_ = cmd.MarkFlagRequired("format")
	return cmd
}

// AddCommands adds the eval, merge, and project commands as subcommands of parent.
func AddCommands(parent *cobra.Command) {
	parent.AddCommand(EvalCommand())
	parent.AddCommand(MergeCommand())
	parent.AddCommand(ProjectCommand())
}
