package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"

	"github.com/scott-cotton/cli"
)

// docSep separates documents in one input.
const docSep = "\n---\n"

func openArg(cc *cli.Context, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cc.In), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return f, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	r, err := openArg(cc, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return parse.Parse(d, opts...)
}

// eachDoc calls f with every document in the named files, or in cc.In when
// there are none.
func eachDoc(cc *cli.Context, files []string, opts []parse.ParseOption, f func(name string, i int, doc *ir.Node) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		r, err := openArg(cc, file)
		if err != nil {
			return err
		}
		in, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return fmt.Errorf("error reading %s: %w", file, err)
		}
		for i, d := range bytes.Split(in, []byte(docSep)) {
			doc, err := parse.Parse(d, opts...)
			if err != nil {
				return fmt.Errorf("error decoding %s document %d: %w", file, i, err)
			}
			if err := f(file, i, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// docWriter writes documents separated by docSep. JSON documents are
// written one after another as a JSON stream instead.
type docWriter struct {
	w    io.Writer
	opts []encode.EncodeOption
	sep  string
	n    int
}

func (cfg *MainConfig) docWriter(w io.Writer) *docWriter {
	return newDocWriter(w, cfg.encOpts(w))
}

func newDocWriter(w io.Writer, opts []encode.EncodeOption) *docWriter {
	dw := &docWriter{w: w, opts: opts, sep: docSep}
	if encode.FormatFromOpts(opts...) == format.JSONFormat {
		dw.sep = "\n"
	}
	return dw
}

func (dw *docWriter) write(doc *ir.Node) error {
	if dw.n > 0 {
		if _, err := io.WriteString(dw.w, dw.sep); err != nil {
			return err
		}
	}
	dw.n++
	if err := encode.Encode(doc, dw.w, dw.opts...); err != nil {
		return fmt.Errorf("error encoding result %d: %w", dw.n-1, err)
	}
	return nil
}

func (dw *docWriter) close() error {
	if dw.n == 0 {
		return nil
	}
	_, err := io.WriteString(dw.w, "\n")
	return err
}

func getish(s, f bool, cc *cli.Context, arg string, opts []parse.ParseOption) (*ir.Node, error) {
	if s == f && s {
		return nil, fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	var r io.Reader
	if f {
		rc, err := openArg(cc, arg)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		r = rc
	} else {
		r = strings.NewReader(arg)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	res, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return res, nil
}

func keyPath(arg string) ([]string, error) {
	if arg == "" {
		return nil, fmt.Errorf("%w: invalid key path \"\"", cli.ErrUsage)
	}
	p, err := ir.ParsePath(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return p, nil
}
