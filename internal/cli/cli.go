package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/specialistvlad/imagineer/internal/app"
	"github.com/specialistvlad/imagineer/internal/operation"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stderrIsTerminal picks the default log format.
var stderrIsTerminal = func() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("imagineer", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
imagineer - apply an image-operation script to an image.

Usage:
  imagineer [options] [INPUT] [OUTPUT]

Arguments:
  INPUT    Image to read. Defaults to stdin.
  OUTPUT   Image to write. Defaults to stdout. The extension picks the format.

Example:
  imagineer -x "set preserve-aspect-ratio true; resize 200 200; blur 1.5" in.png out.jpg

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprint(output, "\nOperations:\n")
		for _, id := range operation.All() {
			if !id.IsModifier() {
				fmt.Fprintf(output, "  %-26s %d argument(s)\n", id.Name(), id.Arity())
			}
		}
		fmt.Fprint(output, "\nModifiers (apply to later resize operations):\n")
		for _, id := range operation.Modifiers() {
			fmt.Fprintf(output, "  %-26s %d argument(s)\n", "set "+id.Name(), id.Arity())
			fmt.Fprintf(output, "  %-26s restores the default\n", "del "+id.Name())
		}
	}

	var inputPath, outputPath, scriptText string
	flagSet.StringVar(&inputPath, "input", "", "Input image path. '-' is stdin.")
	flagSet.StringVar(&inputPath, "i", "", "Input image path (shorthand).")
	flagSet.StringVar(&outputPath, "output", "", "Output image path. '-' is stdout.")
	flagSet.StringVar(&outputPath, "o", "", "Output image path (shorthand).")
	flagSet.StringVar(&scriptText, "apply-operations", "", "Inline script, e.g. \"blur 1; fliph\".")
	flagSet.StringVar(&scriptText, "x", "", "Inline script (shorthand).")
	scriptFileFlag := flagSet.String("script-file", "", "Path to a file containing a script.")
	recipeFlag := flagSet.String("recipe", "", "Path to a recipe file (.hcl, .yaml, .yml) or a directory of them.")
	recipeNameFlag := flagSet.String("recipe-name", "", "Recipe to run. Required when more than one recipe is loaded.")
	formatFlag := flagSet.String("output-format", "", "Force the output format: bmp, gif, jpeg, png or tiff.")
	jpegQualityFlag := flagSet.Int("jpeg-quality", 80, "JPEG quality, 1 to 100.")
	gifRepeatFlag := flagSet.Int("gif-repeat", 0, "Animated GIF loop count: -1 plays once, 0 loops forever. Keeps the input's when unset.")
	selectFrameFlag := flagSet.Int("select-frame", 0, "Use only this frame (1-based) of an animated input.")
	workersFlag := flagSet.Int("workers", 0, "Frames transformed at once. 0 uses every CPU.")
	dumpFlag := flagSet.Bool("dump-program", false, "Print the compiled program and exit without reading an image.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'. Defaults to text on a terminal.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	positional := flagSet.Args()
	if len(positional) > 2 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("too many arguments: %s", strings.Join(positional[2:], " "))}
	}
	if len(positional) > 0 {
		if inputPath != "" {
			return nil, false, &ExitError{Code: 2, Message: "input given both as a flag and as an argument"}
		}
		inputPath = positional[0]
	}
	if len(positional) > 1 {
		if outputPath != "" {
			return nil, false, &ExitError{Code: 2, Message: "output given both as a flag and as an argument"}
		}
		outputPath = positional[1]
	}
	slog.Debug("Paths determined.", "input", inputPath, "output", outputPath)

	var gifRepeat *int
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "gif-repeat" {
			gifRepeat = gifRepeatFlag
		}
	})

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat == "" {
		logFormat = "json"
		if stderrIsTerminal() {
			logFormat = "text"
		}
	}

	config, err := app.NewConfig(app.Config{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		Script:       scriptText,
		ScriptFile:   *scriptFileFlag,
		RecipePath:   *recipeFlag,
		RecipeName:   *recipeNameFlag,
		OutputFormat: strings.ToLower(*formatFlag),
		JPEGQuality:  *jpegQualityFlag,
		GIFRepeat:    gifRepeat,
		SelectFrame:  *selectFrameFlag,
		DumpProgram:  *dumpFlag,
		LogFormat:    logFormat,
		LogLevel:     strings.ToLower(*logLevelFlag),
		WorkerCount:  *workersFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
