package main

import (
	"fmt"
	"strings"

	kvs "github.com/signadot/kvs-format/go-kvs"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a key path, a value and at most one file", cli.ErrUsage)
	}
	path, err := keyPath(args[0])
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return fmt.Errorf("%w: cannot set the root", cli.ErrUsage)
	}
	val := setValue(args[1], cfg.String)
	dw := cfg.docWriter(cc.Out)
	if err := eachDoc(cc, args[2:], cfg.parseOpts(), func(_ string, _ int, doc *ir.Node) error {
		doc.Set(val, path...)
		return dw.write(doc)
	}); err != nil {
		return err
	}
	return dw.close()
}

// setValue reads v as a kvs document when it looks like one.
func setValue(v string, leaf bool) *ir.Node {
	t := strings.TrimSpace(v)
	if leaf || !(strings.HasSuffix(t, ";") || strings.HasSuffix(t, "]")) {
		return ir.FromString(v)
	}
	n, err := parse.ParseString(t, parse.ParseStrict())
	if err != nil {
		return ir.FromString(v)
	}
	return n
}

func del(cfg *DelConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Del.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: del requires a key path and at most one file", cli.ErrUsage)
	}
	path, err := keyPath(args[0])
	if err != nil {
		return err
	}
	dw := cfg.docWriter(cc.Out)
	if err := eachDoc(cc, args[1:], cfg.parseOpts(), func(_ string, _ int, doc *ir.Node) error {
		if len(path) == 0 {
			doc.Clear()
		} else {
			doc.Remove(path...)
		}
		return dw.write(doc)
	}); err != nil {
		return err
	}
	return dw.close()
}

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires a base and at least one file", cli.ErrUsage)
	}
	base, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	res := kvs.New()
	res.MergeNode(base)
	for _, arg := range args[1:] {
		other, err := getObjFile(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		res.MergeNode(other)
	}
	dw := cfg.docWriter(cc.Out)
	if err := dw.write(res.Node()); err != nil {
		return err
	}
	return dw.close()
}
