package kvs

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

func mustParse(t *testing.T, s string) *KVS {
	t.Helper()
	k, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestParseAndText(t *testing.T) {
	k := mustParse(t, "host[ip=127.0.0.1;port=80;]msg=a;;b;=x;=y;")
	if got := k.Get("host", "ip"); got != "127.0.0.1" {
		t.Errorf("ip: %q", got)
	}
	if got := k.Get("msg"); got != "a;b" {
		t.Errorf("msg: %q", got)
	}
	if diff := cmp.Diff([]string{"host", "msg", "0", "1"}, k.Keys()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := k.String(); got != "host[ip=127.0.0.1;port=80;]msg=a;;b;0=x;1=y;" {
		t.Errorf("text: %q", got)
	}
	want := "host\n[\n\tip=127.0.0.1;\n\tport=80;\n]\nmsg=a;;b;\n0=x;\n1=y;"
	if got := k.Pretty(); got != want {
		t.Errorf("pretty: %q", got)
	}
	s, err := k.Text(encode.EncodeWrap("w"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(s, "w[host[") || !strings.HasSuffix(s, "]") {
		t.Errorf("wrap: %q", s)
	}
}

func TestFromNode(t *testing.T) {
	k, err := FromNode(ir.FromStrings("x", "y"))
	if err != nil {
		t.Fatal(err)
	}
	if k.String() != "=x;=y;" {
		t.Errorf("got %q", k.String())
	}
	if _, err := FromNode(ir.FromStringMap(map[string]string{"a=b": "c"})); err == nil {
		t.Error("expected encoding error")
	}
}

func TestCacheInvalidation(t *testing.T) {
	k := mustParse(t, "a=1;")
	if k.String() != "a=1;" {
		t.Fatal(k.String())
	}
	k.SetString("2", "b", "c")
	if got := k.String(); got != "a=1;b[c=2;]" {
		t.Errorf("after set: %q", got)
	}
	k.Remove("a")
	if got := k.String(); got != "b[c=2;]" {
		t.Errorf("after remove: %q", got)
	}
	k.Node().SetString("3", "d")
	k.Touch()
	if got := k.String(); got != "b[c=2;]d=3;" {
		t.Errorf("after touch: %q", got)
	}
	k.Clear()
	if k.String() != "" || len(k.Keys()) != 0 {
		t.Errorf("clear: %q %v", k.String(), k.Keys())
	}
	k.Clear()
	if k.String() != "" {
		t.Error("clear is not idempotent")
	}
}

func TestAccessors(t *testing.T) {
	k := New()
	k.AddString("x")
	k.Add(ir.FromStringMap(map[string]string{"k": "v"}))
	k.SetString("8080", "port")
	k.SetString("true", "tls")
	k.SetDefault(ir.FromString("other"), "port")
	k.SetDefault(ir.FromString("h"), "host")
	k.AddAll(ir.FromString("z"))

	if got := k.String(); got != "=x;[k=v;]port=8080;tls=true;host=h;5=z;" {
		t.Errorf("got %q", got)
	}
	if k.GetInt(0, "port") != 8080 || !k.GetBool(false, "tls") || k.GetInt(7, "host") != 7 {
		t.Error("typed getters")
	}
	if k.GetString("def", "missing") != "def" {
		t.Error("GetString default")
	}
	if k.Get("missing", "deep") != "" || k.Exists("missing") {
		t.Error("absent path")
	}
	if k.Get("1") != "" || !k.Exists("1") {
		t.Error("object is not a leaf but exists")
	}
	if k.FirstKey() != "0" || k.FirstValue().String != "x" {
		t.Error("first")
	}
	if diff := cmp.Diff(map[string]string{"0": "x", "port": "8080", "tls": "true", "host": "h", "5": "z"}, k.GetMap()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(k.Values()) != 6 || k.Len() != 6 || k.IsEmpty() {
		t.Error("values")
	}
	v := k.View("1")
	v.SetString("w", "k")
	if k.Get("1", "k") != "w" {
		t.Error("view is not live")
	}
}

func TestViewDropsCache(t *testing.T) {
	k := mustParse(t, "a[x=1;]")
	if got := k.String(); got != "a[x=1;]" {
		t.Fatalf("got %q", got)
	}
	tests := []struct {
		name  string
		write func(k *KVS)
		want  string
	}{
		{"set string", func(k *KVS) { k.View("a").SetString("2", "x") }, "a[x=2;]"},
		{"nested view", func(k *KVS) { k.View("a").View("y").SetString("3", "z") }, "a[x=2;y[z=3;]]"},
		{"add", func(k *KVS) { k.View("b").Add(ir.FromString("v")) }, "a[x=2;y[z=3;]]b[=v;]"},
		{"merge", func(k *KVS) { k.View("b").Merge(ir.FromStringMap(map[string]string{"m": "1"})) }, "a[x=2;y[z=3;]]b[=v;m=1;]"},
		{"remove", func(k *KVS) { k.View("a").Remove("y") }, "a[x=2;]b[=v;m=1;]"},
		{"clear", func(k *KVS) { k.View("b").Clear() }, "a[x=2;]b[]"},
	}
	for _, tt := range tests {
		tt.write(k)
		if got := k.String(); got != tt.want {
			t.Errorf("%s: got %q want %q", tt.name, got, tt.want)
		}
	}
	d, err := k.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "a[x=2;]b[]" {
		t.Errorf("MarshalText %q", d)
	}
}

func TestMerge(t *testing.T) {
	base := mustParse(t, "a[x=1;]b=1;")
	base.String()
	base.Merge(mustParse(t, "a[y=2;]b=2;c=3;"))
	if got := base.String(); got != "a[x=1;y=2;]b=2;c=3;" {
		t.Errorf("got %q", got)
	}
}

func TestJSON(t *testing.T) {
	k := mustParse(t, "z=1;a[=x;=y;]")
	d, err := json.Marshal(k)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `{"z":"1","a":{"0":"x","1":"y"}}` {
		t.Errorf("got %s", d)
	}
	var back KVS
	if err := json.Unmarshal([]byte(`{"z":1,"a":["x","y"],"n":null,"b":true}`), &back); err != nil {
		t.Fatal(err)
	}
	if got := back.String(); got != "z=1;a[=x;=y;]n=;b=true;" {
		t.Errorf("got %q", got)
	}
}

func TestText(t *testing.T) {
	var k KVS
	if err := k.UnmarshalText([]byte("a=1;")); err != nil {
		t.Fatal(err)
	}
	d, err := k.MarshalText()
	if err != nil || string(d) != "a=1;" {
		t.Errorf("got %q %v", d, err)
	}
	if err := k.UnmarshalText([]byte("a=1;]")); err == nil {
		t.Error("expected strict parse error")
	}
}

func TestReadWrite(t *testing.T) {
	in := "a=1;b[c=2;]"
	k := New()
	n, err := k.ReadFrom(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(in)) {
		t.Errorf("read %d", n)
	}
	buf := bytes.NewBuffer(nil)
	m, err := k.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != in || m != int64(len(in)) {
		t.Errorf("wrote %d %q", m, buf.String())
	}
	if _, err := k.ReadFrom(strings.NewReader("")); err != nil || !k.IsEmpty() {
		t.Errorf("empty input: %v", err)
	}
}

func TestJSONEmptyKey(t *testing.T) {
	k := New()
	if err := json.Unmarshal([]byte(`{"":"v","a":"1"}`), k); err != nil {
		t.Fatal(err)
	}
	if k.Get("") != "v" {
		t.Errorf("got %q", k.Get(""))
	}
	if _, err := k.Text(); !errors.Is(err, encode.ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestJSONPatch(t *testing.T) {
	k := mustParse(t, "z=1;m[b=2;a=3;]l[=x;=y;]")
	err := k.JSONPatch([]byte(`[
		{"op": "replace", "path": "/m/b", "value": "20"},
		{"op": "add", "path": "/n", "value": {"k": "v"}},
		{"op": "remove", "path": "/l/0"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if got := k.String(); got != "z=1;m[b=20;a=3;]l[1=y;]n[k=v;]" {
		t.Errorf("got %q", got)
	}
	if err := k.JSONPatch([]byte(`[{"op": "test", "path": "/z", "value": "2"}]`)); err == nil {
		t.Error("expected failed test op")
	}
}

func TestMergePatch(t *testing.T) {
	k := mustParse(t, "z=1;m[b=2;a=3;]")
	if err := k.MergePatch([]byte(`{"m": {"a": null, "c": "4"}, "y": "5"}`)); err != nil {
		t.Fatal(err)
	}
	if got := k.String(); got != "z=1;m[b=2;c=4;]y=5;" {
		t.Errorf("got %q", got)
	}
}
