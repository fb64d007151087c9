package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"
)

// NodeFromer is implemented by types which decode themselves from a tree.
type NodeFromer interface {
	FromNode(*ir.Node) error
}

var (
	nodeType      = reflect.TypeFor[ir.Node]()
	fromerType    = reflect.TypeFor[NodeFromer]()
	unmarshalType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

type loadOpts struct {
	format format.Format
}

type LoadOption func(*loadOpts)

func LoadFormat(f format.Format) LoadOption { return func(o *loadOpts) { o.format = f } }

// Load parses d and decodes the result into p, which must be a non-nil
// pointer.
func Load(d []byte, p any, opts ...LoadOption) error {
	lo := &loadOpts{format: format.KVSFormat}
	for _, f := range opts {
		f(lo)
	}
	node, err := parse.Parse(d, parse.ParseFormat(lo.format), parse.ParseStrict())
	if err != nil {
		return err
	}
	return FromNode(node, p)
}

// FromNode decodes node into p, which must be a non-nil pointer. Fields of
// p with no corresponding entry in node are left alone.
func FromNode(node *ir.Node, p any) error {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%w: FromNode needs a non-nil pointer, got %T", ErrUnsupported, p)
	}
	return decodeValue(node, v.Elem())
}

func decodeValue(node *ir.Node, v reflect.Value) error {
	if v.CanAddr() {
		pv := v.Addr()
		if pv.Type().Implements(fromerType) {
			return pv.Interface().(NodeFromer).FromNode(node)
		}
		if node.IsLeaf() && pv.Type().Implements(unmarshalType) {
			if err := pv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(node.String)); err != nil {
				return fmt.Errorf("%w at %s: %w", ErrConvert, node.Path(), err)
			}
			return nil
		}
	}
	if v.Type() == nodeType {
		return fmt.Errorf("%w: use *ir.Node rather than ir.Node", ErrUnsupported)
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.Type().Elem() == nodeType {
			v.Set(reflect.ValueOf(node.Clone()))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return decodeValue(node, v.Elem())
	case reflect.Interface:
		if v.NumMethod() != 0 {
			break
		}
		if x := ir.ToAny(node); x != nil {
			v.Set(reflect.ValueOf(x))
		}
		return nil
	case reflect.Struct:
		return decodeStruct(node, v)
	case reflect.Map:
		return decodeMap(node, v)
	case reflect.Slice:
		return decodeSlice(node, v)
	case reflect.Array:
		return decodeArray(node, v)
	default:
		return decodeLeaf(node, v)
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, v.Type())
}

func needObject(node *ir.Node, v reflect.Value) error {
	if !node.IsObject() {
		return fmt.Errorf("%w at %s: cannot decode leaf %q into %s", ErrConvert, node.Path(), node.String, v.Type())
	}
	return nil
}

func decodeStruct(node *ir.Node, v reflect.Value) error {
	if err := needObject(node, v); err != nil {
		return err
	}
	for _, f := range structFields(v.Type()) {
		child := node.Child(f.name)
		if child == nil {
			continue
		}
		if err := decodeValue(child, v.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

func decodeMap(node *ir.Node, v reflect.Value) error {
	if err := needObject(node, v); err != nil {
		return err
	}
	ty := v.Type()
	if ty.Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key type %s", ErrUnsupported, ty.Key())
	}
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(ty, node.Len()))
	}
	for _, kv := range node.KeyVals() {
		elt := reflect.New(ty.Elem()).Elem()
		if err := decodeValue(kv.Val, elt); err != nil {
			return err
		}
		v.SetMapIndex(reflect.ValueOf(kv.Key.String()).Convert(ty.Key()), elt)
	}
	return nil
}

func decodeSlice(node *ir.Node, v reflect.Value) error {
	if node.IsLeaf() && v.Type().Elem().Kind() == reflect.Uint8 {
		v.SetBytes([]byte(node.String))
		return nil
	}
	if err := needObject(node, v); err != nil {
		return err
	}
	res := reflect.MakeSlice(v.Type(), len(node.Values), len(node.Values))
	for i, c := range node.Values {
		if err := decodeValue(c, res.Index(i)); err != nil {
			return err
		}
	}
	v.Set(res)
	return nil
}

func decodeArray(node *ir.Node, v reflect.Value) error {
	if err := needObject(node, v); err != nil {
		return err
	}
	if len(node.Values) > v.Len() {
		return fmt.Errorf("%w at %s: %d values do not fit in %s", ErrConvert, node.Path(), len(node.Values), v.Type())
	}
	for i, c := range node.Values {
		if err := decodeValue(c, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeLeaf(node *ir.Node, v reflect.Value) error {
	if !node.IsLeaf() {
		return fmt.Errorf("%w at %s: cannot decode object into %s", ErrConvert, node.Path(), v.Type())
	}
	s := node.String
	var err error
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		var b bool
		b, err = strconv.ParseBool(s)
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		i, err = strconv.ParseInt(s, 10, v.Type().Bits())
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		var u uint64
		u, err = strconv.ParseUint(s, 10, v.Type().Bits())
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		var f float64
		f, err = strconv.ParseFloat(s, v.Type().Bits())
		v.SetFloat(f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, v.Type())
	}
	if err != nil {
		return fmt.Errorf("%w at %s: %w", ErrConvert, node.Path(), err)
	}
	return nil
}
