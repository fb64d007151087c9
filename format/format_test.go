package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  error
	}{
		{in: "k", want: KVSFormat},
		{in: "kvs", want: KVSFormat},
		{in: "j", want: JSONFormat},
		{in: "json", want: JSONFormat},
		{in: "y", want: YAMLFormat},
		{in: "yaml", want: YAMLFormat},
		{in: "toml", err: ErrBadFormat},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if !errors.Is(err, tt.err) {
			t.Errorf("ParseFormat(%q) error = %v, want %v", tt.in, err, tt.err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if g != f {
			t.Errorf("got %s want %s", g, f)
		}
	}
}

func TestFromSuffix(t *testing.T) {
	tests := map[string]Format{
		"a.kvs":       KVSFormat,
		"a.json":      JSONFormat,
		"a.yaml":      YAMLFormat,
		"dir/b.yml":   YAMLFormat,
		"no-suffix":   KVSFormat,
		"weird.kvs.x": KVSFormat,
	}
	for in, want := range tests {
		if got := FromSuffix(in); got != want {
			t.Errorf("FromSuffix(%q) = %s, want %s", in, got, want)
		}
	}
}
