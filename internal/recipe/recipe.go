package recipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/imagineer/internal/coerce"
	"github.com/specialistvlad/imagineer/internal/ctxlog"
	"github.com/specialistvlad/imagineer/internal/fsutil"
	"github.com/specialistvlad/imagineer/internal/instr"
	"github.com/specialistvlad/imagineer/internal/script"
)

// Recipe file extensions.
const (
	Extension     = ".hcl"
	YAMLExtension = ".yaml"
	YMLExtension  = ".yml"
)

var extensions = []string{Extension, YAMLExtension, YMLExtension}

var (
	// ErrNotFound is returned by Select for an unknown name.
	ErrNotFound = errors.New("recipe not found")
	// ErrAmbiguous is returned by Select without a name when several recipes are loaded.
	ErrAmbiguous = errors.New("more than one recipe loaded, a name is required")
)

// Recipe is a named, compiled program.
type Recipe struct {
	Name        string
	Description string
	// Range is where the recipe block was declared.
	Range   hcl.Range
	Program instr.Program
}

// Book is a set of recipes with unique names, in declaration order.
type Book struct {
	recipes []*Recipe
	byName  map[string]*Recipe
}

// Names lists the recipe names in sorted order.
func (b *Book) Names() []string {
	names := make([]string, 0, len(b.recipes))
	for _, r := range b.recipes {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}

// Len is the number of recipes.
func (b *Book) Len() int { return len(b.recipes) }

// Select returns the recipe called name. An empty name selects the only
// recipe of a single-recipe book.
func (b *Book) Select(name string) (*Recipe, error) {
	if name == "" {
		switch len(b.recipes) {
		case 0:
			return nil, fmt.Errorf("%w: no recipes loaded", ErrNotFound)
		case 1:
			return b.recipes[0], nil
		default:
			return nil, fmt.Errorf("%w (have: %s)", ErrAmbiguous, strings.Join(b.Names(), ", "))
		}
	}
	r, ok := b.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' (have: %s)", ErrNotFound, name, strings.Join(b.Names(), ", "))
	}
	return r, nil
}

// Load reads every recipe file found at paths (files or directories) and
// compiles all recipes.
func Load(ctx context.Context, paths ...string) (*Book, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Recipe loader started.", "path_count", len(paths))

	files, err := fsutil.ResolvePaths(ctx, extensions, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipe paths: %w", err)
	}
	logger.Debug("Discovered recipe files.", "count", len(files))

	parser := hclparse.NewParser()
	book := newBook()
	for _, file := range files {
		logger.Debug("Decoding recipe file.", "path", file)
		var raws []*rawRecipe
		if filepath.Ext(file) == Extension {
			hclFile, diags := parser.ParseHCLFile(file)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
			}
			if raws, diags = decodeBody(hclFile.Body, hclFile.Bytes); diags.HasErrors() {
				return nil, fmt.Errorf("failed to load recipe file %s: %w", file, diags)
			}
		} else {
			src, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read recipe file %s: %w", file, err)
			}
			if raws, err = decodeYAML(file, src); err != nil {
				return nil, err
			}
		}
		if err := book.add(ctx, raws); err != nil {
			return nil, fmt.Errorf("failed to load recipe file %s: %w", file, err)
		}
	}

	logger.Debug("Recipe loading complete.", "recipes", book.Len())
	return book, nil
}

// Parse loads recipes from in-memory HCL source. filename is only used in
// positions and messages.
func Parse(ctx context.Context, filename string, src []byte) (*Book, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	raws, diags := decodeBody(hclFile.Body, src)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load recipe file %s: %w", filename, diags)
	}
	book := newBook()
	if err := book.add(ctx, raws); err != nil {
		return nil, fmt.Errorf("failed to load recipe file %s: %w", filename, err)
	}
	return book, nil
}

// ParseYAML loads recipes from in-memory YAML source.
func ParseYAML(ctx context.Context, filename string, src []byte) (*Book, error) {
	raws, err := decodeYAML(filename, src)
	if err != nil {
		return nil, err
	}
	book := newBook()
	if err := book.add(ctx, raws); err != nil {
		return nil, fmt.Errorf("failed to load recipe file %s: %w", filename, err)
	}
	return book, nil
}

func newBook() *Book {
	return &Book{byName: make(map[string]*Recipe)}
}

func (b *Book) add(ctx context.Context, raws []*rawRecipe) error {
	logger := ctxlog.FromContext(ctx)

	for _, raw := range raws {
		if prev, ok := b.byName[raw.name]; ok {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Duplicate recipe",
				Detail:   fmt.Sprintf("Recipe %q was already declared at %s.", raw.name, prev.Range),
				Subject:  raw.defRange.Ptr(),
			}}
		}

		prog, err := compile(raw)
		if err != nil {
			return fmt.Errorf("recipe '%s': %w", raw.name, err)
		}

		r := &Recipe{Name: raw.name, Description: raw.description, Range: raw.defRange, Program: prog}
		b.recipes = append(b.recipes, r)
		b.byName[r.Name] = r
		logger.Debug("Loaded recipe.", "name", r.Name, "instructions", len(prog))
	}
	return nil
}

func compile(raw *rawRecipe) (instr.Program, error) {
	if raw.script != nil {
		return script.CompileFile(raw.defRange.Filename, *raw.script)
	}

	prog := instr.Program{}
	for i, stmt := range raw.steps {
		ins, err := coerce.Coerce(stmt)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s) at %s: %w", i+1, stmt.ID, stmt.Pos, err)
		}
		prog = append(prog, ins...)
	}
	return prog, nil
}
