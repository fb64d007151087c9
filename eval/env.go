package eval

import (
	"fmt"
	"os"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/debug"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"
)

// Env holds the variables visible to expressions.
type Env map[string]any

// EnvVar names the environment variable LoadEnv reads.
const EnvVar = "KVS_ENV"

// EnvFromNode makes the top level entries of n variables. Leaves become
// strings and objects map[string]any.
func EnvFromNode(n *ir.Node) Env {
	res := Env{}
	if n == nil || n.Type != ir.ObjectType {
		return res
	}
	for i, v := range n.Values {
		res[n.Fields[i].String()] = ir.ToAny(v)
	}
	return res
}

// With returns a copy of env with other's variables added.
func (env Env) With(other Env) Env {
	res := make(Env, len(env)+len(other))
	for k, v := range env {
		res[k] = v
	}
	for k, v := range other {
		res[k] = v
	}
	return res
}

// LoadEnv parses the KVS document held in $KVS_ENV. A value starting with
// '@' names a file holding the document instead. An unset variable yields
// an empty Env.
func LoadEnv() (Env, error) {
	v, ok := os.LookupEnv(EnvVar)
	if !ok || strings.TrimSpace(v) == "" {
		return Env{}, nil
	}
	d := []byte(v)
	if strings.HasPrefix(v, "@") {
		var err error
		d, err = os.ReadFile(v[1:])
		if err != nil {
			return nil, fmt.Errorf("could not read %s file: %w", EnvVar, err)
		}
	}
	n, err := parse.Parse(d, parse.ParseStrict())
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", EnvVar, err)
	}
	if debug.LoadEnv() {
		debug.Logf("loaded env %s\n", debug.KVS{Node: n})
	}
	return EnvFromNode(n), nil
}
