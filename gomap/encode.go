package gomap

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

// NodeToer is implemented by types which encode themselves as a tree.
type NodeToer interface {
	ToNode() (*ir.Node, error)
}

var (
	toerType    = reflect.TypeFor[NodeToer]()
	marshalType = reflect.TypeFor[encoding.TextMarshaler]()
)

// ToNode encodes v as a tree. Structs, maps with string keys, slices and
// arrays become objects; everything else becomes a leaf.
func ToNode(v any) (*ir.Node, error) {
	if v == nil {
		return ir.FromString(""), nil
	}
	return encodeValue(reflect.ValueOf(v))
}

// Dump encodes v as KVS text.
func Dump(v any, opts ...encode.EncodeOption) ([]byte, error) {
	node, err := ToNode(v)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(v reflect.Value) (*ir.Node, error) {
	if !v.IsValid() {
		return ir.FromString(""), nil
	}
	ty := v.Type()
	if ty.Implements(toerType) {
		if ty.Kind() == reflect.Pointer && v.IsNil() {
			return ir.FromString(""), nil
		}
		return v.Interface().(NodeToer).ToNode()
	}
	if ty.Implements(marshalType) {
		if ty.Kind() == reflect.Pointer && v.IsNil() {
			return ir.FromString(""), nil
		}
		d, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, err
		}
		return ir.FromString(string(d)), nil
	}
	if ty == reflect.PointerTo(nodeType) {
		if v.IsNil() {
			return ir.FromString(""), nil
		}
		return v.Interface().(*ir.Node).Clone(), nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return ir.FromString(""), nil
		}
		return encodeValue(v.Elem())
	case reflect.Struct:
		return encodeStruct(v)
	case reflect.Map:
		return encodeMap(v)
	case reflect.Slice:
		if ty.Elem().Kind() == reflect.Uint8 {
			return ir.FromString(string(v.Bytes())), nil
		}
		return encodeList(v)
	case reflect.Array:
		return encodeList(v)
	case reflect.String:
		return ir.FromString(v.String()), nil
	case reflect.Bool:
		return ir.FromString(strconv.FormatBool(v.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromString(strconv.FormatInt(v.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromString(strconv.FormatUint(v.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromString(strconv.FormatFloat(v.Float(), 'g', -1, ty.Bits())), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, ty)
}

func encodeStruct(v reflect.Value) (*ir.Node, error) {
	res := ir.NewObject()
	for _, f := range structFields(v.Type()) {
		fv := v.Field(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		c, err := encodeValue(fv)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.name, err)
		}
		res.Put(ir.Named(f.name), c)
	}
	return res, nil
}

func encodeMap(v reflect.Value) (*ir.Node, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: map key type %s", ErrUnsupported, v.Type().Key())
	}
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})
	res := ir.NewObject()
	for _, k := range keys {
		c, err := encodeValue(v.MapIndex(k))
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", k.String(), err)
		}
		res.Put(ir.Named(k.String()), c)
	}
	return res, nil
}

func encodeList(v reflect.Value) (*ir.Node, error) {
	res := ir.NewObject()
	for i := range v.Len() {
		c, err := encodeValue(v.Index(i))
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		res.Put(ir.Positional(i), c)
	}
	return res, nil
}
