package gomap

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

type host struct {
	IP      netip.Addr `kvs:"ip"`
	Port    int        `kvs:"port,omitempty"`
	Secure  bool       `kvs:"secure"`
	Weight  float64    `kvs:"weight,omitempty"`
	Skipped string     `kvs:"-"`
	Name    string
	private string
}

type config struct {
	Hosts  []host            `kvs:"hosts"`
	Labels map[string]string `kvs:"labels"`
	Extra  *ir.Node          `kvs:"extra"`
	Any    any               `kvs:"any"`
	Pair   [2]uint8          `kvs:"pair"`
}

func TestLoad(t *testing.T) {
	in := `hosts[[ip=10.0.0.1;port=80;secure=true;Name=a;][ip=10.0.0.2;secure=false;weight=0.5;]]` +
		`labels[b=2;a=1;]extra[x=y;]any[k=v;]pair[=1;=2;]`
	var c config
	if err := Load([]byte(in), &c); err != nil {
		t.Fatal(err)
	}
	want := config{
		Hosts: []host{
			{IP: netip.MustParseAddr("10.0.0.1"), Port: 80, Secure: true, Name: "a"},
			{IP: netip.MustParseAddr("10.0.0.2"), Weight: 0.5},
		},
		Labels: map[string]string{"a": "1", "b": "2"},
		Any:    map[string]any{"k": "v"},
		Pair:   [2]uint8{1, 2},
	}
	if c.Extra == nil || c.Extra.Get("x") != "y" {
		t.Errorf("extra: %v", c.Extra)
	}
	c.Extra = nil
	if diff := cmp.Diff(want, c, cmp.AllowUnexported(host{}), cmp.Comparer(func(a, b netip.Addr) bool { return a == b })); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLoadJSON(t *testing.T) {
	var h host
	if err := Load([]byte(`{"ip":"::1","port":8080}`), &h, LoadFormat(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	if h.Port != 8080 || h.IP.String() != "::1" {
		t.Errorf("got %+v", h)
	}
}

func TestFromNodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		p    any
		want error
	}{
		{"bad int", `port=x;`, &host{}, ErrConvert},
		{"bad bool", `secure=maybe;`, &host{}, ErrConvert},
		{"object into leaf", `port[a=b;]`, &host{}, ErrConvert},
		{"leaf into struct", `hosts[=x;]`, &config{}, ErrConvert},
		{"array overflow", `pair[=1;=2;=3;]`, &config{}, ErrConvert},
		{"not a pointer", `a=b;`, host{}, ErrUnsupported},
		{"int keys", `a=b;`, &map[int]string{}, ErrUnsupported},
		{"chan", `a=b;`, &map[string]chan int{}, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Load([]byte(tt.in), tt.p)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestToNode(t *testing.T) {
	c := config{
		Hosts: []host{
			{IP: netip.MustParseAddr("10.0.0.1"), Port: 80, Name: "a", Skipped: "x"},
		},
		Labels: map[string]string{"z": "1", "a": "2"},
		Extra:  ir.FromStringMap(map[string]string{"x": "y"}),
		Any:    []any{"p", 3},
	}
	d, err := Dump(c)
	if err != nil {
		t.Fatal(err)
	}
	want := "hosts[[ip=10.0.0.1;port=80;secure=false;Name=a;]]labels[a=2;z=1;]extra[x=y;]any[=p;=3;]pair[=0;=0;]"
	if string(d) != want {
		t.Errorf("got %s", d)
	}

	var back config
	if err := Load(d, &back); err != nil {
		t.Fatal(err)
	}
	if back.Hosts[0].IP != c.Hosts[0].IP || back.Labels["z"] != "1" || back.Extra.Get("x") != "y" {
		t.Errorf("got %+v", back)
	}
}

type custom struct{ v string }

func (c *custom) FromNode(n *ir.Node) error {
	c.v = n.FirstString()
	return nil
}

func (c custom) ToNode() (*ir.Node, error) {
	return ir.FromStrings(c.v), nil
}

func TestCustom(t *testing.T) {
	var c struct {
		C custom `kvs:"c"`
	}
	if err := Load([]byte(`c[=hello;]`), &c); err != nil {
		t.Fatal(err)
	}
	if c.C.v != "hello" {
		t.Errorf("got %q", c.C.v)
	}
	d, err := Dump(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "c[=hello;]" {
		t.Errorf("got %s", d)
	}
}

func TestToNodeLeaf(t *testing.T) {
	n, err := ToNode(42)
	if err != nil {
		t.Fatal(err)
	}
	if !n.IsLeaf() || n.String != "42" {
		t.Errorf("got %v", n)
	}
	if _, err := ToNode(make(chan int)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v", err)
	}
}
