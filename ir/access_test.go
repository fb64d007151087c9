package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAbsentPath(t *testing.T) {
	n := NewObject()
	n.SetString("x", "present")
	if got := n.Get("missing", "deep"); got != "" {
		t.Errorf("Get = %q", got)
	}
	if n.Exists("missing") {
		t.Error("Exists(missing)")
	}
	if n.GetNode("present", "below") != nil {
		t.Error("leaf has children")
	}
	if n.Remove("missing", "deep") {
		t.Error("removed absent path")
	}
}

func TestGetShape(t *testing.T) {
	n := NewObject()
	n.SetString("127.0.0.1", "host", "ip")
	if got := n.Get("host"); got != "" {
		t.Errorf("Get on object = %q", got)
	}
	if !n.Exists("host") || !n.Exists("host", "ip") {
		t.Error("Exists ignores shape")
	}
	if !n.Exists() {
		t.Error("empty path exists")
	}
}

func TestSetVivify(t *testing.T) {
	n := NewObject()
	n.SetString("leaf", "a")
	n.SetString("deep", "a", "b", "c")
	if got := jsonString(t, n); got != `{"a":{"b":{"c":"deep"}}}` {
		t.Errorf("got %s", got)
	}
	if n.Set(FromString("x")) != nil {
		t.Error("empty path set")
	}
}

func TestSetOverwriteInPlace(t *testing.T) {
	n := FromStringMap(map[string]string{"a": "1", "b": "2"})
	n.Set(FromStrings("x", "y"), "a")
	if got := jsonString(t, n); got != `{"a":{"0":"x","1":"y"},"b":"2"}` {
		t.Errorf("got %s", got)
	}
}

func TestSetDefault(t *testing.T) {
	n := NewObject()
	n.SetString("1", "a")
	if got := n.SetDefault(FromString("2"), "a"); got.String != "1" {
		t.Errorf("overwrote existing: %q", got.String)
	}
	if got := n.SetDefault(FromString("3"), "b"); got.String != "3" || n.Get("b") != "3" {
		t.Errorf("did not set default")
	}
}

func TestRemove(t *testing.T) {
	n := NewObject()
	n.SetString("1", "a", "x")
	n.SetString("2", "a", "y")
	if !n.Remove("a", "x") {
		t.Fatal("expected removal")
	}
	if diff := cmp.Diff([]string{"y"}, n.Keys("a")); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestAdd(t *testing.T) {
	n := NewObject()
	n.AddString("a")
	n.AddString("b")
	n.SetString("c", "3")
	n.AddString("d")
	if diff := cmp.Diff([]string{"0", "1", "3", "4"}, n.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	n.AddAll(FromString("e"), FromString("f"))
	if got := n.Get("6"); got != "f" {
		t.Errorf("got %q", got)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name           string
		base, incoming string
		want           string
	}{
		{
			name:     "recursive",
			base:     `{"a":{"x":"1"}}`,
			incoming: `{"a":{"y":"2"}}`,
			want:     `{"a":{"x":"1","y":"2"}}`,
		},
		{
			name:     "incoming wins",
			base:     `{"a":"1"}`,
			incoming: `{"a":"2"}`,
			want:     `{"a":"2"}`,
		},
		{
			name:     "object replaces leaf",
			base:     `{"a":"1","b":"2"}`,
			incoming: `{"a":{"z":"3"}}`,
			want:     `{"a":{"z":"3"},"b":"2"}`,
		},
		{
			name:     "leaf replaces object",
			base:     `{"a":{"z":"3"}}`,
			incoming: `{"a":"1"}`,
			want:     `{"a":"1"}`,
		},
		{
			name:     "appends new keys",
			base:     `{"b":"1"}`,
			incoming: `{"a":"2"}`,
			want:     `{"b":"1","a":"2"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := FromJSON([]byte(tt.base))
			if err != nil {
				t.Fatal(err)
			}
			in, err := FromJSON([]byte(tt.incoming))
			if err != nil {
				t.Fatal(err)
			}
			base.Merge(in)
			if got := jsonString(t, base); got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
			if got := jsonString(t, in); got != tt.incoming {
				t.Errorf("incoming mutated: %s", got)
			}
		})
	}
}

func TestProjections(t *testing.T) {
	n := NewObject()
	if n.FirstKey() != "" || n.FirstValue() != nil || n.FirstString() != "" {
		t.Error("empty sentinels")
	}
	if len(n.Keys()) != 0 || len(n.List()) != 0 {
		t.Error("empty projections")
	}
	n.SetString("1", "a")
	n.SetString("2", "b", "c")
	if n.FirstKey() != "a" || n.FirstString() != "1" {
		t.Error("first entry")
	}
	if got := n.List(); len(got) != 2 || got[1] != n.GetNode("b") {
		t.Error("List values")
	}
}

func TestClear(t *testing.T) {
	n := NewObject()
	n.SetString("1", "a")
	n.Clear()
	n.Clear()
	if len(n.Keys()) != 0 || !n.IsEmpty() {
		t.Error("not cleared")
	}
	if got := jsonString(t, n); got != "{}" {
		t.Errorf("got %s", got)
	}
}

func TestGetList(t *testing.T) {
	n := NewObject()
	n.SetString("one", "leaf")
	n.Set(FromStrings("a", "b"), "list")
	n.SetString("nested", "list", "x", "y")
	if diff := cmp.Diff([]string{"one"}, n.GetList("leaf")); diff != "" {
		t.Errorf("leaf (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, n.GetList("list")); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}
	if n.GetList("none") != nil {
		t.Error("absent list")
	}
}

func TestTypedGetters(t *testing.T) {
	n := NewObject()
	n.SetString(" 42 ", "i")
	n.SetString("2.5", "f")
	n.SetString("true", "b")
	n.SetString("x", "s")
	if got := n.GetInt(-1, "i"); got != 42 {
		t.Errorf("GetInt = %d", got)
	}
	if got := n.GetInt(-1, "s"); got != -1 {
		t.Errorf("GetInt bad = %d", got)
	}
	if got := n.GetInt64(-1, "missing"); got != -1 {
		t.Errorf("GetInt64 = %d", got)
	}
	if got := n.GetFloat64(0, "f"); got != 2.5 {
		t.Errorf("GetFloat64 = %v", got)
	}
	if got := n.GetBool(false, "b"); !got {
		t.Error("GetBool")
	}
	if got := n.GetStringOr("def", "missing"); got != "def" {
		t.Errorf("GetStringOr = %q", got)
	}
	if got := n.GetStringOr("def", "s"); got != "x" {
		t.Errorf("GetStringOr = %q", got)
	}
}
