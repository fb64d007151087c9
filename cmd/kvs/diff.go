package main

import (
	"fmt"

	"github.com/signadot/kvs-format/go-kvs/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	d := libdiff.Diff(a, b)
	if len(d) == 0 {
		return nil
	}
	if cfg.Reverse {
		rev, err := libdiff.Reverse(d)
		if err != nil {
			return fmt.Errorf("error reversing: %w", err)
		}
		d = rev
	}
	if cfg.Lines {
		for i := range d {
			if _, err := fmt.Fprintln(cc.Out, d[i].String()); err != nil {
				return err
			}
		}
	} else {
		dw := cfg.docWriter(cc.Out)
		if err := dw.write(libdiff.ToNode(d)); err != nil {
			return err
		}
		if err := dw.close(); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}
