package ir

import "fmt"

type Type int

const (
	StringType Type = iota
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		StringType: "String",
		ObjectType: "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"String": StringType,
		"Object": ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{StringType, ObjectType}
}

func (t Type) IsLeaf() bool {
	return t == StringType
}
