package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a key path", cli.ErrUsage)
	}
	path, err := keyPath(args[0])
	if err != nil {
		return err
	}
	dw := cfg.docWriter(cc.Out)
	err = eachDoc(cc, args[1:], cfg.parseOpts(), func(name string, i int, doc *ir.Node) error {
		res := doc.GetNode(path...)
		if res == nil {
			return fmt.Errorf("%s document %d: no entry at %s", name, i, ir.FormatPath(path...))
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

func writeLeaf(dw *docWriter, s string) error {
	if dw.n > 0 {
		if _, err := io.WriteString(dw.w, docSep); err != nil {
			return err
		}
	}
	dw.n++
	_, err := io.WriteString(dw.w, s)
	return err
}

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: keys requires one argument, a key path", cli.ErrUsage)
	}
	path, err := keyPath(args[0])
	if err != nil {
		return err
	}
	return eachDoc(cc, args[1:], cfg.parseOpts(), func(_ string, _ int, doc *ir.Node) error {
		ks := doc.Keys(path...)
		if len(ks) == 0 {
			return nil
		}
		_, err := io.WriteString(cc.Out, strings.Join(ks, "\n")+"\n")
		return err
	})
}
