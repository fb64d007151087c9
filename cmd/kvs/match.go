package main

import (
	"fmt"

	kvs "github.com/signadot/kvs-format/go-kvs"
	"github.com/signadot/kvs-format/go-kvs/eval"
	"github.com/signadot/kvs-format/go-kvs/ir"

	"github.com/scott-cotton/cli"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	var pattern *ir.Node
	if cfg.Expr == "" {
		if len(args) == 0 {
			return fmt.Errorf("%w: match requires 1 argument, a pattern", cli.ErrUsage)
		}
		pattern, err = getish(cfg.String, cfg.File, cc, args[0], cfg.parseOpts())
		if err != nil {
			return err
		}
		args = args[1:]
	}
	env, err := eval.LoadEnv()
	if err != nil {
		return err
	}
	dw := cfg.docWriter(cc.Out)
	err = eachDoc(cc, args, cfg.parseOpts(), func(name string, i int, doc *ir.Node) error {
		var (
			ok  bool
			err error
		)
		if pattern != nil {
			ok = kvs.Match(doc, pattern)
		} else {
			ok, err = eval.Match(cfg.Expr, doc, env)
			if err != nil {
				return fmt.Errorf("%s document %d: %w", name, i, err)
			}
		}
		if !ok {
			return nil
		}
		if cfg.Trim && pattern != nil {
			doc = kvs.Trim(pattern, doc)
		}
		return dw.write(doc)
	})
	if err != nil {
		return err
	}
	return dw.close()
}
