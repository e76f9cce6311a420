package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	krpretty "github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojs/internal/logging"
	"github.com/yaklabco/gojs/pkg/codegen"
	"github.com/yaklabco/gojs/pkg/fsutil"
	"github.com/yaklabco/gojs/pkg/jsparse"
	"github.com/yaklabco/gojs/pkg/mangle"
	"github.com/yaklabco/gojs/pkg/semantic"
)

// Source map output modes.
const (
	sourceMapNone   = "none"
	sourceMapFile   = "file"
	sourceMapInline = "inline"
)

type printFlags struct {
	minify             bool
	singleQuote        bool
	noComments         bool
	annotationComments bool
	mangle             bool
	topLevel           bool
	sourceMap          string
	output             string
	sourceType         string
	dumpAST            bool
}

func newPrintCommand() *cobra.Command {
	flags := &printFlags{}

	cmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Reprint or minify a JavaScript file",
		Long: `Parse a JavaScript file and print it back.

Output uses the fewest parentheses that preserve meaning and never lets two
tokens merge. With --minify whitespace and redundant semicolons are dropped;
--mangle additionally shortens local identifiers. Reads stdin when no file
is given or the file is "-".

Examples:
  gojs print app.js                          Pretty-print to stdout
  gojs print --minify --mangle app.js        Minify with short names
  gojs print --source-map file -o out.js app.js
                                             Write out.js and out.js.map
  gojs print --dump-ast app.js               Show the parsed syntax tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runPrint(cmd, input, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.minify, "minify", false, "remove insignificant whitespace")
	cmd.Flags().BoolVar(&flags.singleQuote, "single-quote", false, "prefer single-quoted strings")
	cmd.Flags().BoolVar(&flags.noComments, "no-comments", false, "drop comments from the output")
	cmd.Flags().BoolVar(&flags.annotationComments, "annotation-comments", false,
		"keep annotation comments such as /* @__PURE__ */ when comments are dropped")
	cmd.Flags().BoolVar(&flags.mangle, "mangle", false, "rename local identifiers to short names")
	cmd.Flags().BoolVar(&flags.topLevel, "toplevel", false, "also rename top-level bindings in scripts")
	cmd.Flags().StringVar(&flags.sourceMap, "source-map", sourceMapNone, "source map output: none, file, inline")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().StringVar(&flags.sourceType, "source-type", "",
		"parse as module or script (default: from the file extension)")
	cmd.Flags().BoolVar(&flags.dumpAST, "dump-ast", false, "print the parsed syntax tree instead of code")

	return cmd
}

func runPrint(cmd *cobra.Command, input string, flags *printFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	switch flags.sourceMap {
	case sourceMapNone, sourceMapFile, sourceMapInline:
	default:
		return fmt.Errorf("invalid --source-map %q: must be none, file or inline", flags.sourceMap)
	}
	if flags.sourceMap == sourceMapFile && flags.output == "" {
		return errors.New("--source-map file requires --output")
	}

	source, name, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	sourceType, err := resolveSourceType(flags.sourceType, name)
	if err != nil {
		return err
	}

	program, err := jsparse.Parse(ctx, string(source), jsparse.Options{SourceType: sourceType})
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	if flags.dumpAST {
		_, err := krpretty.Fprintf(cmd.OutOrStdout(), "%# v\n", program)
		return err
	}

	opts := codegen.DefaultOptions()
	opts.Minify = flags.minify
	opts.SingleQuote = flags.singleQuote
	opts.Comments = !flags.noComments
	opts.AnnotationComments = flags.annotationComments
	if flags.sourceMap != sourceMapNone {
		opts.SourceMapPath = name
	}

	gen := codegen.New(opts)
	if flags.mangle {
		sem := semantic.Build(program, semantic.Options{})
		gen = gen.WithMangler(mangle.Build(sem, mangle.Options{TopLevel: flags.topLevel}))
	}
	result := gen.Build(program)

	code := result.Code
	var mapData []byte
	if result.Map != nil {
		code, err = attachSourceMap(code, result, flags)
		if err != nil {
			return err
		}
		if flags.sourceMap == sourceMapFile {
			if mapData, err = result.Map.ToJSON(); err != nil {
				return fmt.Errorf("encode source map: %w", err)
			}
		}
	}

	logger.Debug("printed",
		logging.FieldInput, name,
		logging.FieldMinify, flags.minify,
		logging.FieldMangle, flags.mangle,
		logging.FieldSourceMap, flags.sourceMap,
		logging.FieldBytes, len(code),
	)

	if flags.output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), code)
		return err
	}
	if err := fsutil.WriteGenerated(ctx, flags.output, []byte(code), flags.output+".map", mapData); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Debug("wrote output", logging.FieldOutput, flags.output)
	return nil
}

func readInput(stdin io.Reader, input string) ([]byte, string, error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin.js", nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return data, input, nil
}

func resolveSourceType(flag, name string) (jsparse.SourceType, error) {
	switch flag {
	case "":
		return jsparse.SourceTypeFromPath(name), nil
	case "module":
		return jsparse.SourceModule, nil
	case "script":
		return jsparse.SourceScript, nil
	}
	return 0, fmt.Errorf("invalid --source-type %q: must be module or script", flag)
}

// attachSourceMap appends the sourceMappingURL comment for the chosen mode.
func attachSourceMap(code string, result codegen.Result, flags *printFlags) (string, error) {
	if code != "" && code[len(code)-1] != '\n' {
		code += "\n"
	}
	if flags.sourceMap == sourceMapInline {
		url, err := result.Map.ToDataURL()
		if err != nil {
			return "", fmt.Errorf("encode source map: %w", err)
		}
		return code + "//# sourceMappingURL=" + url + "\n", nil
	}
	return code + "//# sourceMappingURL=" + filepath.Base(flags.output) + ".map\n", nil
}
