package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Pretty    bool   `cli:"name=p aliases=pretty desc='encode with one entry per line'"`
	Indent    string `cli:"name=indent desc='indentation for pretty output'"`
	ForceKeys bool   `cli:"name=k aliases=keys desc='write positional keys instead of eliding them'"`
	Color     bool   `cli:"name=color desc='encode with color'"`
	Strict    bool   `cli:"name=strict desc='fail on irregular input'"`

	K bool `cli:"name=kvs desc='do i/o in kvs'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) ioFormat() format.Format {
	switch {
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	return format.KVSFormat
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return cfg.ioFormat()
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return cfg.ioFormat()
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{
		parse.ParseFormat(cfg.inFormat()),
	}
	if cfg.Strict {
		res = append(res, parse.ParseStrict())
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodePretty(cfg.Pretty),
		encode.EncodeForceKeys(cfg.ForceKeys),
	}
	if cfg.Indent != "" {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig

	Diags bool `cli:"name=d desc='report irregular input on stderr'"`
	View  *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Write bool `cli:"name=w desc='write result to the source file'"`
	Fmt   *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	String bool `cli:"name=s desc='store the value as a leaf even if it parses as kvs'"`
	Set    *cli.Command
}

type DelConfig struct {
	*MainConfig

	Del *cli.Command
}

type KeysConfig struct {
	*MainConfig

	Keys *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Merge *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Lines   bool `cli:"name=l desc='print one line per change'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='apply diff reversed'"`
	String  bool `cli:"name=s desc='patch arg as string'"`
	File    bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type JSONPatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=m desc='patch is an rfc 7386 merge patch'"`
	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`

	JSONPatch *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env  map[string]any
	Expr string `cli:"name=x desc='evaluate an expression against each document'"`

	Eval *cli.Command
}

type MatchConfig struct {
	*cli.Command
	*MainConfig

	Trim   bool   `cli:"name=trim desc='trim the results to the match'"`
	String bool   `cli:"name=s desc='consider match a string argument'"`
	File   bool   `cli:"name=f desc='consider match a file path'"`
	Expr   string `cli:"name=x desc='match documents with a boolean expression instead'"`
}
