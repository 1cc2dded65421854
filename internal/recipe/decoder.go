package recipe

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/specialistvlad/imagineer/internal/syntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// rawRecipe is a decoded recipe before compilation, whatever file format it
// came from.
type rawRecipe struct {
	name        string
	description string
	defRange    hcl.Range
	script      *string
	steps       []syntax.Statement
}

// decodeBody reads every recipe block of one file. src is the file's source,
// used to recover number literals as written.
func decodeBody(body hcl.Body, src []byte) ([]*rawRecipe, hcl.Diagnostics) {
	content, diags := body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	recipes := make([]*rawRecipe, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		r, d := decodeRecipe(block, src)
		diags = append(diags, d...)
		if r != nil {
			recipes = append(recipes, r)
		}
	}
	return recipes, diags
}

func decodeRecipe(block *hcl.Block, src []byte) (*rawRecipe, hcl.Diagnostics) {
	content, diags := block.Body.Content(recipeSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	r := &rawRecipe{name: block.Labels[0], defRange: block.DefRange}
	if r.name == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty recipe name",
			Detail:   "A recipe needs a non-empty name label.",
			Subject:  &block.LabelRanges[0],
		})
	}

	if attr, ok := content.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &r.description)...)
	}
	var scriptAttr *hcl.Attribute
	if attr, ok := content.Attributes["script"]; ok {
		var text string
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &text)...)
		r.script, scriptAttr = &text, attr
	}

	for _, sb := range content.Blocks {
		stmt, d := decodeStep(sb, src)
		diags = append(diags, d...)
		r.steps = append(r.steps, stmt)
	}

	if r.script != nil && len(r.steps) > 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Conflicting recipe body",
			Detail:   fmt.Sprintf("Recipe %q sets \"script\" and also has step blocks; use one or the other.", r.name),
			Subject:  scriptAttr.NameRange.Ptr(),
		})
	}

	return r, diags
}

func decodeStep(block *hcl.Block, src []byte) (syntax.Statement, hcl.Diagnostics) {
	stmt := syntax.Statement{Pos: pos(block.DefRange)}

	content, diags := block.Body.Content(stepSchema)
	if diags.HasErrors() {
		return stmt, diags
	}

	id, ok := operation.Lookup(block.Labels[0])
	if !ok {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown operation",
			Detail:   fmt.Sprintf("%q is not an operation or modifier.", block.Labels[0]),
			Subject:  &block.LabelRanges[0],
		})
		return stmt, diags
	}
	stmt.ID = id

	if attr, ok := content.Attributes["reset"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &stmt.Reset)...)
	}

	if attr, ok := content.Attributes["args"]; ok {
		exprs, d := hcl.ExprList(attr.Expr)
		diags = append(diags, d...)
		for _, expr := range exprs {
			tok, d := token(expr, src)
			diags = append(diags, d...)
			stmt.Args = append(stmt.Args, tok)
		}
	}

	return stmt, diags
}

// token renders one step argument as the raw token the script parser would
// have produced for it. Numbers keep their source text, so "-88.0" stays a
// fraction and fails an integer argument just as it does in a script.
func token(expr hcl.Expression, src []byte) (syntax.Token, hcl.Diagnostics) {
	tok := syntax.Token{Pos: pos(expr.Range())}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return tok, diags
	}

	invalid := func(detail string) hcl.Diagnostics {
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid step argument",
			Detail:   detail,
			Subject:  expr.Range().Ptr(),
		})
	}

	if val.IsNull() || !val.IsWhollyKnown() {
		return tok, invalid("Step arguments must be literal values.")
	}

	switch val.Type() {
	case cty.Number:
		text := strings.TrimSpace(string(expr.Range().SliceBytes(src)))
		if !syntax.IsNumber(text) {
			return tok, invalid(fmt.Sprintf("Step numbers must be plain decimal literals such as 12 or -1.5, got %q.", text))
		}
		tok.Kind, tok.Text = syntax.Number, text
		return tok, diags
	case cty.Bool:
		tok.Kind = syntax.Bool
	case cty.String:
		tok.Kind = syntax.String
		if isCall(val.AsString()) {
			tok.Kind = syntax.Call
		}
	default:
		return tok, invalid(fmt.Sprintf("Step arguments must be numbers, bools or strings, got %s.", val.Type().FriendlyName()))
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return tok, invalid(err.Error())
	}
	tok.Text = str.AsString()
	return tok, diags
}

var callNames = []string{"coord(", "rgba(", "size(", "font("}

func isCall(s string) bool {
	if !strings.HasSuffix(s, ")") {
		return false
	}
	for _, prefix := range callNames {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func pos(r hcl.Range) syntax.Pos {
	return syntax.Pos{
		File:   r.Filename,
		Line:   r.Start.Line,
		Column: r.Start.Column,
		Offset: r.Start.Byte,
	}
}
