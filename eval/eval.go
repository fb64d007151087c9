package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/kvs-format/go-kvs/debug"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

func exprOpts(doc *ir.Node) []expr.Option {
	return []expr.Option{
		expr.Function("whereami", func(params ...any) (any, error) {
			return doc.Path(), nil
		},
			new(func() string)),
		expr.Function("get", func(params ...any) (any, error) {
			return doc.Root().Get(stringParams(params)...), nil
		},
			new(func(...string) string)),
		expr.Function("getpath", func(params ...any) (any, error) {
			return doc.Root().GetPath(params[0].(string))
		},
			new(func(string) *ir.Node)),
		expr.Function("keys", func(params ...any) (any, error) {
			return doc.Root().Keys(stringParams(params)...), nil
		},
			new(func(...string) []string)),
		expr.Function("exists", func(params ...any) (any, error) {
			return doc.Root().Exists(stringParams(params)...), nil
		},
			new(func(...string) bool)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func stringParams(params []any) []string {
	res := make([]string, len(params))
	for i, p := range params {
		res[i] = p.(string)
	}
	return res
}

func run(code string, doc *ir.Node, env Env, opts ...expr.Option) (any, error) {
	if doc == nil {
		doc = ir.NewObject()
	}
	program, err := expr.Compile(code, append(exprOpts(doc), opts...)...)
	if err != nil {
		return nil, err
	}
	res, err := vm.Run(program, map[string]any(env))
	if debug.Eval() {
		debug.Logf("eval %q at %s gave %#v (err %v)\n", code, doc.Path(), res, err)
	}
	return res, err
}

// Eval evaluates code with doc as the current node.
func Eval(code string, doc *ir.Node, env Env) (any, error) {
	res, err := run(code, doc, env)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", code, err)
	}
	return res, nil
}

// EvalNode is Eval with the result converted to a node.
func EvalNode(code string, doc *ir.Node, env Env) (*ir.Node, error) {
	res, err := Eval(code, doc, env)
	if err != nil {
		return nil, err
	}
	return toNode(res)
}

// Match evaluates the boolean expression code with doc as the current
// node.
func Match(code string, doc *ir.Node, env Env) (bool, error) {
	res, err := run(code, doc, env, expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("error matching %q: %w", code, err)
	}
	return res.(bool), nil
}

// Filter returns the entries of doc for which code holds. Each entry is
// evaluated with the variables key and value added to env; value is a
// string for leaves and a map[string]any for objects.
func Filter(code string, doc *ir.Node, env Env) ([]ir.KeyVal, error) {
	program, err := expr.Compile(code, append(exprOpts(doc), expr.AsBool())...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", code, err)
	}
	var res []ir.KeyVal
	for _, kv := range doc.KeyVals() {
		vars := env.With(Env{"key": kv.Key.String(), "value": ir.ToAny(kv.Val)})
		ok, err := vm.Run(program, map[string]any(vars))
		if err != nil {
			return nil, fmt.Errorf("error matching %q at %s: %w", code, kv.Val.Path(), err)
		}
		if ok.(bool) {
			res = append(res, kv)
		}
	}
	return res, nil
}

func toNode(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case *ir.Node:
		if x == nil {
			return ir.FromString(""), nil
		}
		return x.Clone(), nil
	case []*ir.Node:
		return ir.FromSlice(x), nil
	default:
		return ir.FromAny(v)
	}
}
