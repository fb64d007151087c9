package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNodePath(t *testing.T) {
	n := NewObject()
	n.SetString("x", "host", "a.b", "0")
	leaf := n.GetNode("host", "a.b", "0")
	if got := leaf.Path(); got != "$.host.'a.b'.0" {
		t.Errorf("Path() = %s", got)
	}
	if diff := cmp.Diff([]string{"host", "a.b", "0"}, leaf.KeyPath()); diff != "" {
		t.Errorf("KeyPath (-want +got):\n%s", diff)
	}
	if got := n.Path(); got != "$" {
		t.Errorf("root Path() = %s", got)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"$", []string{}},
		{"", []string{}},
		{"$.a.b", []string{"a", "b"}},
		{"a.b", []string{"a", "b"}},
		{"$.a[2].c", []string{"a", "2", "c"}},
		{"$.'a.b'.c", []string{"a.b", "c"}},
		{`$.'it\'s'`, []string{"it's"}},
		{`$.'back\\slash'`, []string{`back\slash`}},
		{"$.''", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{"$x", "$.a[", "$.a[x]", "$.'open", "$.a..b"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePath(in)
			if !errors.Is(err, ErrPath) {
				t.Errorf("expected ErrPath, got %v", err)
			}
		})
	}
}

func TestFormatPathRoundTrip(t *testing.T) {
	keys := []string{"plain", "a.b", "it's", "", "[x]", `c:\dir`}
	got, err := ParsePath(FormatPath(keys...))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(keys, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
