package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	var diags []parse.Diagnostic
	opts := cfg.parseOpts()
	if cfg.Diags {
		opts = append(opts, parse.ParseDiagnostics(&diags))
	}
	dw := cfg.docWriter(cc.Out)
	err = eachDoc(cc, args, opts, func(name string, i int, doc *ir.Node) error {
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "%s: document %d: %s\n", name, i, d)
		}
		diags = diags[:0]
		return dw.write(doc)
	})
	if err != nil {
		return err
	}
	return dw.close()
}

func fmtDocs(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if !cfg.Write {
		dw := cfg.docWriter(cc.Out)
		if err := eachDoc(cc, args, cfg.parseOpts(), func(_ string, _ int, doc *ir.Node) error {
			return dw.write(doc)
		}); err != nil {
			return err
		}
		return dw.close()
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: fmt -w requires files", cli.ErrUsage)
	}
	for _, file := range args {
		buf := bytes.NewBuffer(nil)
		dw := &docWriter{w: buf, opts: []encode.EncodeOption{
			encode.EncodeFormat(cfg.outFormat()),
			encode.EncodePretty(cfg.Pretty),
			encode.EncodeForceKeys(cfg.ForceKeys),
		}}
		if err := eachDoc(cc, []string{file}, cfg.parseOpts(), func(_ string, _ int, doc *ir.Node) error {
			return dw.write(doc)
		}); err != nil {
			return err
		}
		if err := dw.close(); err != nil {
			return err
		}
		if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("could not write %s: %w", file, err)
		}
	}
	return nil
}

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.inFormat() == cfg.outFormat() {
		return fmt.Errorf("%w: convert needs different input and output formats, see -I and -O", cli.ErrUsage)
	}
	dw := cfg.docWriter(cc.Out)
	if err := eachDoc(cc, args, cfg.parseOpts(), func(_ string, _ int, doc *ir.Node) error {
		return dw.write(doc)
	}); err != nil {
		return err
	}
	return dw.close()
}
