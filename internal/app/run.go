package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/specialistvlad/imagineer/internal/ctxlog"
	"github.com/specialistvlad/imagineer/internal/engine"
	"github.com/specialistvlad/imagineer/internal/imageio"
	"github.com/specialistvlad/imagineer/internal/instr"
	"github.com/specialistvlad/imagineer/internal/raster"
	"github.com/specialistvlad/imagineer/internal/recipe"
	"github.com/specialistvlad/imagineer/internal/script"
)

// Run executes one transformation: program, input, interpretation, output.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	prog, err := a.program(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Program compiled.", "instructions", len(prog))

	if a.config.DumpProgram {
		if len(prog) > 0 {
			if _, err := fmt.Fprintln(a.streams.Out, instr.Format(prog)); err != nil {
				return fmt.Errorf("failed to write program: %w", err)
			}
		}
		return nil
	}

	// Fail on a bad output format before doing any work.
	format, err := imageio.FormatFor(outputName(a.config.OutputPath), a.config.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to pick output format: %w", err)
	}

	img, err := a.decode(ctx)
	if err != nil {
		return err
	}

	if a.config.SelectFrame > 0 {
		if err := img.SelectFrame(a.config.SelectFrame); err != nil {
			return fmt.Errorf("failed to select frame: %w", err)
		}
		logger.Debug("Frame selected.", "frame", a.config.SelectFrame)
	}

	eng := engine.New(engine.WithWorkers(a.config.WorkerCount), engine.WithLoader(imageio.Files{}))
	if err := eng.Run(ctx, img, prog); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	if err := a.encode(ctx, img, format); err != nil {
		return err
	}

	logger.Info("Image written.", "output", displayName(a.config.OutputPath), "format", format, "kind", img.Kind, "frames", len(img.Frames), "bounds", img.Bounds())
	logger.Debug("App.Run method finished.")
	return nil
}

// program compiles the configured program source. No source yields an empty
// program, which copies the image.
func (a *App) program(ctx context.Context) (instr.Program, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := a.config

	switch {
	case cfg.Script != "":
		prog, err := script.Compile(cfg.Script)
		if err != nil {
			return nil, fmt.Errorf("failed to compile script: %w", err)
		}
		return prog, nil

	case cfg.ScriptFile != "":
		src, err := os.ReadFile(cfg.ScriptFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read script file '%s': %w", cfg.ScriptFile, err)
		}
		prog, err := script.CompileFile(cfg.ScriptFile, string(src))
		if err != nil {
			return nil, fmt.Errorf("failed to compile script file '%s': %w", cfg.ScriptFile, err)
		}
		return prog, nil

	case cfg.RecipePath != "":
		book, err := recipe.Load(ctx, cfg.RecipePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load recipes from '%s': %w", cfg.RecipePath, err)
		}
		r, err := book.Select(cfg.RecipeName)
		if err != nil {
			return nil, fmt.Errorf("failed to select recipe: %w", err)
		}
		logger.Info("Recipe selected.", "name", r.Name, "description", r.Description)
		return r.Program, nil
	}

	logger.Warn("No operations given, the image is copied unchanged.")
	return instr.Program{}, nil
}

func (a *App) decode(ctx context.Context) (*raster.Image, error) {
	logger := ctxlog.FromContext(ctx)
	in := a.streams.In
	if !isStdio(a.config.InputPath) {
		f, err := os.Open(a.config.InputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open input '%s': %w", a.config.InputPath, err)
		}
		defer f.Close()
		in = f
	}

	img, format, err := imageio.Decode(bufio.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("failed to decode input '%s': %w", displayName(a.config.InputPath), err)
	}
	logger.Debug("Input decoded.", "input", displayName(a.config.InputPath), "format", format, "kind", img.Kind, "frames", len(img.Frames), "bounds", img.Bounds())
	return img, nil
}

func (a *App) encode(ctx context.Context, img *raster.Image, format imaging.Format) (err error) {
	logger := ctxlog.FromContext(ctx)
	opts := imageio.Options{JPEGQuality: a.config.JPEGQuality, GIFRepeat: a.config.GIFRepeat}

	var out io.Writer = a.streams.Out
	if !isStdio(a.config.OutputPath) {
		f, cerr := os.Create(a.config.OutputPath)
		if cerr != nil {
			return fmt.Errorf("failed to create output '%s': %w", a.config.OutputPath, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output '%s': %w", a.config.OutputPath, cerr)
			}
		}()
		out = f
	}

	w := bufio.NewWriter(out)
	if err := imageio.Encode(w, img, format, opts); err != nil {
		return fmt.Errorf("failed to encode output '%s': %w", displayName(a.config.OutputPath), err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output '%s': %w", displayName(a.config.OutputPath), err)
	}
	logger.Debug("Output encoded.", "format", format)
	return nil
}

func isStdio(path string) bool {
	return path == "" || path == "-"
}

func outputName(path string) string {
	if isStdio(path) {
		return ""
	}
	return path
}

func displayName(path string) string {
	if isStdio(path) {
		return "<stdio>"
	}
	return path
}
