package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/specialistvlad/imagineer/internal/syntax"
	"gopkg.in/yaml.v3"
)

// yamlFile is the top level of a YAML recipe file:
//
//	recipes:
//	  - name: thumbnail
//	    steps:
//	      - op: resize
//	        args: [200, 200]
//	  - name: quick
//	    script: "blur 1; invert"
type yamlFile struct {
	Recipes []yamlRecipe `yaml:"recipes"`
}

type yamlRecipe struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Script      *string    `yaml:"script"`
	Steps       []yamlStep `yaml:"steps"`

	line, column int
}

type yamlStep struct {
	Op    string      `yaml:"op"`
	Args  []yaml.Node `yaml:"args"`
	Reset bool        `yaml:"reset"`

	line, column int
}

func (r *yamlRecipe) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "name", "description", "script", "steps"); err != nil {
		return err
	}
	type plain yamlRecipe
	if err := value.Decode((*plain)(r)); err != nil {
		return err
	}
	r.line, r.column = value.Line, value.Column
	return nil
}

func (s *yamlStep) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "op", "args", "reset"); err != nil {
		return err
	}
	type plain yamlStep
	if err := value.Decode((*plain)(s)); err != nil {
		return err
	}
	s.line, s.column = value.Line, value.Column
	return nil
}

// checkKeys rejects mapping keys that are not in allowed. Decoding through a
// custom unmarshaler does not inherit the decoder's KnownFields setting.
func checkKeys(n *yaml.Node, allowed ...string) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: field %s not found", key.Line, key.Value)
		}
	}
	return nil
}

// decodeYAML reads every recipe of one YAML document.
func decodeYAML(filename string, src []byte) ([]*rawRecipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var f yamlFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}

	raws := make([]*rawRecipe, 0, len(f.Recipes))
	for _, yr := range f.Recipes {
		at := syntax.Pos{File: filename, Line: yr.line, Column: yr.column}
		if yr.Name == "" {
			return nil, fmt.Errorf("%s: recipe needs a non-empty name", at)
		}
		if yr.Script != nil && len(yr.Steps) > 0 {
			return nil, fmt.Errorf("%s: recipe %q sets script and also has steps; use one or the other", at, yr.Name)
		}

		r := &rawRecipe{
			name:        yr.Name,
			description: yr.Description,
			defRange:    hclRange(at),
			script:      yr.Script,
		}
		for _, ys := range yr.Steps {
			stmt, err := yamlStatement(filename, ys)
			if err != nil {
				return nil, fmt.Errorf("recipe '%s': %w", yr.Name, err)
			}
			r.steps = append(r.steps, stmt)
		}
		raws = append(raws, r)
	}
	return raws, nil
}

func yamlStatement(filename string, ys yamlStep) (syntax.Statement, error) {
	stmt := syntax.Statement{
		Pos:   syntax.Pos{File: filename, Line: ys.line, Column: ys.column},
		Reset: ys.Reset,
	}

	id, ok := operation.Lookup(ys.Op)
	if !ok {
		return stmt, fmt.Errorf("%s: %q is not an operation or modifier", stmt.Pos, ys.Op)
	}
	stmt.ID = id

	for i := range ys.Args {
		tok, err := yamlToken(filename, &ys.Args[i])
		if err != nil {
			return stmt, err
		}
		stmt.Args = append(stmt.Args, tok)
	}
	return stmt, nil
}

// yamlToken renders one scalar as the raw token the script parser would have
// produced for it. Numbers keep their source text and must be spelled the way
// a script spells them; bools are normalized to lowercase.
func yamlToken(filename string, n *yaml.Node) (syntax.Token, error) {
	tok := syntax.Token{Pos: syntax.Pos{File: filename, Line: n.Line, Column: n.Column}}
	if n.Kind != yaml.ScalarNode {
		return tok, fmt.Errorf("%s: invalid step argument: expected a number, bool or string", tok.Pos)
	}

	switch n.ShortTag() {
	case "!!int", "!!float":
		if !syntax.IsNumber(n.Value) {
			return tok, fmt.Errorf("%s: invalid step argument: %q is not a plain decimal number", tok.Pos, n.Value)
		}
		tok.Kind, tok.Text = syntax.Number, n.Value
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return tok, fmt.Errorf("%s: invalid step argument: %w", tok.Pos, err)
		}
		tok.Kind, tok.Text = syntax.Bool, strconv.FormatBool(v)
	case "!!str":
		tok.Kind, tok.Text = syntax.String, n.Value
		if isCall(n.Value) {
			tok.Kind = syntax.Call
		}
	default:
		return tok, fmt.Errorf("%s: invalid step argument: %s values are not allowed", tok.Pos, n.ShortTag())
	}
	return tok, nil
}

func hclRange(p syntax.Pos) hcl.Range {
	start := hcl.Pos{Line: p.Line, Column: p.Column, Byte: p.Offset}
	return hcl.Range{Filename: p.File, Start: start, End: start}
}
