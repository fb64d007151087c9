package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.ParseString(s, parse.ParseStrict())
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestEval(t *testing.T) {
	doc := mustParse(t, `host[ip=127.0.0.1;port=80;]name=svc;`)
	tests := []struct {
		name string
		code string
		env  Env
		want any
	}{
		{"arith", "1 + 2", nil, 3},
		{"env var", "x + 1", Env{"x": 41}, 42},
		{"get", `get("host", "port")`, nil, "80"},
		{"get absent", `get("missing")`, nil, ""},
		{"keys", `keys("host")`, nil, []string{"ip", "port"}},
		{"exists", `exists("host", "ip")`, nil, true},
		{"getpath", `getpath("$.host.ip").String`, nil, "127.0.0.1"},
		{"whereami", `whereami()`, nil, "$"},
		{"conversion", `int(get("host", "port")) * 2`, nil, 160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.code, doc, tt.env)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalError(t *testing.T) {
	if _, err := Eval("1 +", nil, nil); err == nil {
		t.Error("expected compile error")
	}
}

func TestEvalNode(t *testing.T) {
	n, err := EvalNode(`{"a": "1", "b": [1, 2]}`, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	d, _ := ir.ToJSON(n)
	if string(d) != `{"a":"1","b":{"0":"1","1":"2"}}` {
		t.Errorf("got %s", d)
	}
}

func TestMatch(t *testing.T) {
	doc := mustParse(t, `port=8080;`)
	ok, err := Match(`int(get("port")) > 1024`, doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected match")
	}
	if _, err := Match(`"not bool"`, doc, nil); err == nil {
		t.Error("expected error for non bool")
	}
}

func TestFilter(t *testing.T) {
	doc := mustParse(t, `a=1;b=2;c[x=3;]`)
	kvs, err := Filter(`key != "b"`, doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, kv := range kvs {
		keys = append(keys, kv.Key.String())
	}
	if diff := cmp.Diff([]string{"a", "c"}, keys); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	kvs, err = Filter(`type(value) == "map" && value.x == "3"`, doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(kvs) != 1 || kvs[0].Key.String() != "c" {
		t.Errorf("got %v", kvs)
	}
}

func TestExpandString(t *testing.T) {
	env := Env{"name": "world", "n": 2, "obj": map[string]any{"k": "v"}}
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"hello $[name]!", "hello world!"},
		{"$[n * 2]$[n]", "42"},
		{`$["a\]b"]`, "a]b"},
		{"$[unclosed", "$[unclosed"},
		{"$[obj]", "[k=v;]"},
		{"a;$[true]", "a;true"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandString(tt.in, env)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestExpandEnv(t *testing.T) {
	doc := mustParse(t, `host[ip=$[ip];url=http://$[get("host", "ip")]:80;]list=.[["a", "b"]];here=$[whereami()];`)
	if err := ExpandEnv(doc, Env{"ip": "10.0.0.1"}); err != nil {
		t.Fatal(err)
	}
	d, _ := ir.ToJSON(doc)
	want := `{"host":{"ip":"10.0.0.1","url":"http://10.0.0.1:80"},"list":{"0":"a","1":"b"},"here":"$.here"}`
	if string(d) != want {
		t.Errorf("got %s", d)
	}
	if doc.GetNode("list", "0").Path() != "$.list.0" {
		t.Error("replacement lost parent links")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvVar, "")
	env, err := LoadEnv()
	if err != nil || len(env) != 0 {
		t.Fatalf("empty: %v %v", env, err)
	}

	t.Setenv(EnvVar, `region=eu;limits[cpu=2;]`)
	env, err = LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	want := Env{"region": "eu", "limits": map[string]any{"cpu": "2"}}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	p := filepath.Join(t.TempDir(), "env.kvs")
	if err := os.WriteFile(p, []byte(`a=1;`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvVar, "@"+p)
	env, err = LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if env["a"] != "1" {
		t.Errorf("got %v", env)
	}

	t.Setenv(EnvVar, `a=1;]`)
	if _, err := LoadEnv(); err == nil {
		t.Error("expected parse error")
	}
}
