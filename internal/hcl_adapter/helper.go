package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// metadataType is the cty type every metadata expression must convert to.
var metadataType = cty.Map(cty.List(cty.String))

// newEvalContext builds the evaluation context shared by every expression in
// one manifest file.
func newEvalContext(dir string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"dir": cty.StringVal(dir),
		},
		Functions: map[string]function.Function{
			"concat":    stdlib.ConcatFunc,
			"format":    stdlib.FormatFunc,
			"join":      stdlib.JoinFunc,
			"lower":     stdlib.LowerFunc,
			"title":     stdlib.TitleFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"upper":     stdlib.UpperFunc,
		},
	}
}

// isExprDefined checks if an HCL expression was actually present in the source
// code. The decoder fills omitted optional hcl.Expression fields with a
// zero-width static null expression, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)

	return isDefined
}

// decodeMetadata evaluates a metadata expression into the map form used by
// the manifests. Single strings are accepted where a list is expected, so
// `key = "C"` and `key = ["C"]` are equivalent.
func decodeMetadata(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) (map[string][]string, error) {
	if !isExprDefined(ctx, expr, "metadata") {
		return nil, nil
	}

	val, diags := expr.Value(evalCtx)
	if err := diagsError(diags); err != nil {
		return nil, fmt.Errorf("invalid metadata: %w", err)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("invalid metadata: value is not known at load time")
	}

	if val.Type().IsObjectType() || val.Type().IsMapType() {
		val = promoteScalars(val)
	}

	converted, err := convert.Convert(val, metadataType)
	if err != nil {
		return nil, fmt.Errorf("invalid metadata: expected a map of string lists: %w", err)
	}

	var out map[string][]string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("invalid metadata: %w", err)
	}
	return out, nil
}

// promoteScalars wraps every primitive element of a map or object into a
// single-element list.
func promoteScalars(val cty.Value) cty.Value {
	if val.LengthInt() == 0 {
		return val
	}
	attrs := make(map[string]cty.Value, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		if v.Type().IsPrimitiveType() && !v.IsNull() {
			v = cty.TupleVal([]cty.Value{v})
		}
		attrs[k.AsString()] = v
	}
	return cty.ObjectVal(attrs)
}

// optString dereferences an optional string attribute.
func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
