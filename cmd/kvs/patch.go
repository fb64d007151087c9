package main

import (
	"fmt"
	"io"

	kvs "github.com/signadot/kvs-format/go-kvs"
	"github.com/signadot/kvs-format/go-kvs/libdiff"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a diff, and a file to which to apply it", cli.ErrUsage)
	}
	dn, err := getish(cfg.String, cfg.File || !cfg.String, cc, args[0], cfg.parseOpts())
	if err != nil {
		return err
	}
	changes, err := libdiff.FromNode(dn)
	if err != nil {
		return fmt.Errorf("error reading diff %s: %w", args[0], err)
	}
	if cfg.Reverse {
		rev, err := libdiff.Reverse(changes)
		if err != nil {
			return fmt.Errorf("error reversing patch: %w", err)
		}
		changes = rev
	}
	target, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if err := libdiff.Patch(target, changes); err != nil {
		return fmt.Errorf("error patching %s: %w", args[1], err)
	}
	dw := cfg.docWriter(cc.Out)
	if err := dw.write(target); err != nil {
		return err
	}
	return dw.close()
}

func jsonPatch(cfg *JSONPatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.JSONPatch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: jsonpatch requires 2 arguments, a patch, and a file to which to apply it", cli.ErrUsage)
	}
	if cfg.String && cfg.File {
		return fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	var p []byte
	if cfg.String {
		p = []byte(args[0])
	} else {
		rc, err := openArg(cc, args[0])
		if err != nil {
			return err
		}
		p, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("error reading %s: %w", args[0], err)
		}
	}
	target, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	doc := kvs.New()
	doc.MergeNode(target)
	if cfg.Merge {
		err = doc.MergePatch(p)
	} else {
		err = doc.JSONPatch(p)
	}
	if err != nil {
		return err
	}
	dw := cfg.docWriter(cc.Out)
	if err := dw.write(doc.Node()); err != nil {
		return err
	}
	return dw.close()
}
