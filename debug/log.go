package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

var out io.Writer = os.Stderr

type JSON any
type KVS struct{ *ir.Node }

func (y KVS) String() string {
	return kvsString(y.Node)
}

func kvsString(x *ir.Node) string {
	if x == nil {
		return "<nil>"
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(x, buf, encode.EncodeWrap("")); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", x)
	}
	return buf.String()
}

// Logf writes to stderr. *ir.Node arguments are rendered as KVS text and
// generic JSON values as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number, JSON:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			args[i] = kvsString(x)
		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
