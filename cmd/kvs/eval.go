package main

import (
	"fmt"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/eval"
	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/ir"

	"github.com/scott-cotton/cli"
)

func kvsEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	env, err := eval.LoadEnv()
	if err != nil {
		return err
	}
	env = env.With(cfg.Env)
	dw := cfg.docWriter(cc.Out)
	err = eachDoc(cc, args, cfg.parseOpts(), func(name string, i int, doc *ir.Node) error {
		if cfg.Expr == "" {
			if err := eval.ExpandEnv(doc, env); err != nil {
				return fmt.Errorf("%s document %d: %w", name, i, err)
			}
			return dw.write(doc)
		}
		res, err := eval.EvalNode(cfg.Expr, doc, env)
		if err != nil {
			return fmt.Errorf("%s document %d: %w", name, i, err)
		}
		if res.IsLeaf() && cfg.outFormat() == format.KVSFormat {
			return writeLeaf(dw, res.String)
		}
		return dw.write(res)
	})
	if err != nil {
		return err
	}
	return dw.close()
}

func envFunc(env map[string]any, a string) error {
	name, val, ok := strings.Cut(a, "=")
	if !ok || name == "" {
		return fmt.Errorf("%w: expected name=val, got %q", cli.ErrUsage, a)
	}
	n := setValue(val, false)
	env[name] = ir.ToAny(n)
	return nil
}
