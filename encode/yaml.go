package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/kvs-format/go-kvs/ir"
)

// toYAML converts node for the yaml encoder. Objects whose keys are
// exactly 0..n-1 become sequences.
func toYAML(node *ir.Node) any {
	if node.Type == ir.StringType {
		return node.String
	}
	if isSequence(node) {
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toYAML(v)
		}
		return res
	}
	res := make(yaml.MapSlice, len(node.Values))
	for i, v := range node.Values {
		res[i] = yaml.MapItem{Key: node.Fields[i].String(), Value: toYAML(v)}
	}
	return res
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	d, err := yaml.MarshalWithOptions(toYAML(node), yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}
