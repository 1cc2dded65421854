package engine

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/specialistvlad/imagineer/internal/ctxlog"
	"github.com/specialistvlad/imagineer/internal/imageio"
	"github.com/specialistvlad/imagineer/internal/instr"
	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/specialistvlad/imagineer/internal/raster"
)

// Loader opens files referenced by instructions.
type Loader interface {
	LoadImage(path string) (image.Image, error)
	ReadFile(path string) ([]byte, error)
}

// Error reports the instruction that failed a run.
type Error struct {
	// Index is the 1-based position of the instruction in the program.
	Index int
	Op    operation.ID
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("instruction %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Engine runs programs. It holds no per-run state and may be shared.
type Engine struct {
	workers int
	loader  Loader
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds how many frames are transformed at once. Values below 1
// select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLoader replaces the file loader. The default reads paths relative to
// the working directory.
func WithLoader(l Loader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{loader: imageio.Files{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// Run applies prog to img in place. The context is checked between
// instructions; an instruction that started always runs to completion.
func (e *Engine) Run(ctx context.Context, img *raster.Image, prog instr.Program) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Run started.", "instructions", len(prog), "kind", img.Kind, "frames", len(img.Frames), "workers", e.workers)

	env := DefaultEnvironment()
	for i, in := range prog {
		index := i + 1
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run stopped before instruction %d: %w", index, err)
		}

		stepLogger := logger.With("index", index, "op", instr.ID(in))
		switch in := in.(type) {
		case instr.EnvUpdate:
			if err := env.apply(in.Item); err != nil {
				return &Error{Index: index, Op: in.Item.Modifier(), Err: err}
			}
			stepLogger.Debug("Environment updated.", "preserve_aspect_ratio", env.PreserveAspectRatio, "sampling_filter", env.SamplingFilter)
		case instr.EnvReset:
			if err := env.reset(in.Modifier); err != nil {
				return &Error{Index: index, Op: in.Modifier, Err: err}
			}
			stepLogger.Debug("Environment reset.", "preserve_aspect_ratio", env.PreserveAspectRatio, "sampling_filter", env.SamplingFilter)
		case instr.Operation:
			fn, err := e.prepare(in.Op, env)
			if err != nil {
				stepLogger.Debug("Operation could not be prepared.", "error", err)
				return &Error{Index: index, Op: in.Op.ID(), Err: err}
			}
			if err := e.scatter(ctx, img, fn); err != nil {
				stepLogger.Debug("Operation failed.", "error", err)
				return &Error{Index: index, Op: in.Op.ID(), Err: err}
			}
			stepLogger.Debug("Operation applied.", "bounds", img.Bounds())
		default:
			return &Error{Index: index, Err: fmt.Errorf("unknown instruction %T", in)}
		}
	}

	logger.Debug("Run finished.", "bounds", img.Bounds())
	return nil
}
