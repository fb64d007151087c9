package parse

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/signadot/kvs-format/go-kvs/ir"
)

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if v == nil {
		return ir.NewObject(), nil
	}
	res, err := fromYAML(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

func fromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := ir.NewObject()
		for _, item := range x {
			c, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			k := ""
			if item.Key != nil {
				k = fmt.Sprint(item.Key)
			}
			res.Put(ir.Named(k), c)
		}
		return res, nil
	case []any:
		res := ir.NewObject()
		for i, e := range x {
			c, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			res.Put(ir.Positional(i), c)
		}
		return res, nil
	default:
		return ir.FromAny(v)
	}
}
