package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
)

// MarshalJSON renders y as an ordered JSON object with string leaves.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := y.writeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) writeJSON(buf *bytes.Buffer) error {
	if y == nil {
		buf.WriteString(`""`)
		return nil
	}
	if y.Type == StringType {
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
		return nil
	}
	buf.WriteByte('{')
	for i, v := range y.Values {
		if i != 0 {
			buf.WriteByte(',')
		}
		d, err := json.Marshal(y.Fields[i].String())
		if err != nil {
			return err
		}
		buf.Write(d)
		buf.WriteByte(':')
		if err := v.writeJSON(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON replaces the contents of y with the JSON value in d.
// Numbers keep their literal text, booleans become "true" or "false",
// null becomes "" and arrays become objects with positional keys.
func (y *Node) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	n, err := decodeJSON(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data", ErrJSON)
	}
	for _, v := range y.Values {
		v.Parent = nil
	}
	n.CloneTo(y)
	return nil
}

func decodeJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			res := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				k, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: key %v", ErrJSON, kt)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Put(Named(k), v)
			}
			_, err := dec.Token()
			return res, err
		case '[':
			res := NewObject()
			for i := 0; dec.More(); i++ {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Put(Positional(i), v)
			}
			_, err := dec.Token()
			return res, err
		default:
			return nil, fmt.Errorf("%w: unexpected %v", ErrJSON, t)
		}
	case string:
		return FromString(t), nil
	case json.Number:
		return FromString(t.String()), nil
	case bool:
		return FromString(strconv.FormatBool(t)), nil
	case nil:
		return FromString(""), nil
	default:
		return nil, fmt.Errorf("%w: token %T", ErrJSON, tok)
	}
}

// ToJSON renders y as JSON.
func ToJSON(y *Node) ([]byte, error) {
	return y.MarshalJSON()
}

// FromJSON decodes a JSON document into a new node.
func FromJSON(d []byte) (*Node, error) {
	res := &Node{}
	if err := res.UnmarshalJSON(d); err != nil {
		return nil, err
	}
	return res, nil
}

// ToAny converts y to plain Go values: a string for a leaf and a
// map[string]any for an object. Key order is lost.
func ToAny(y *Node) any {
	if y == nil {
		return ""
	}
	if y.Type == StringType {
		return y.String
	}
	res := make(map[string]any, len(y.Values))
	for i, v := range y.Values {
		res[y.Fields[i].String()] = ToAny(v)
	}
	return res
}

// FromAny converts plain Go values back to a node. Maps are sorted by key,
// slices get positional keys, and other scalars are formatted with fmt.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return FromString(""), nil
	case *Node:
		return x.Clone(), nil
	case string:
		return FromString(x), nil
	case bool:
		return FromString(strconv.FormatBool(x)), nil
	case json.Number:
		return FromString(x.String()), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return FromString(fmt.Sprint(x)), nil
	case float32:
		return FromString(strconv.FormatFloat(float64(x), 'g', -1, 32)), nil
	case float64:
		return FromString(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case map[string]any:
		res := NewObject()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			c, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			res.Put(Named(k), c)
		}
		return res, nil
	case []any:
		res := NewObject()
		for i, e := range x {
			c, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			res.Put(Positional(i), c)
		}
		return res, nil
	case []string:
		return FromStrings(x...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrJSON, v)
	}
}
