package ir

import "strconv"

type KeyKind int

const (
	NamedKey KeyKind = iota
	PositionalKey
)

// Key is a named or positional key. Name is set for named keys, Index for
// positional ones.
type Key struct {
	Kind  KeyKind
	Name  string
	Index int
}

func Named(name string) Key {
	return Key{Kind: NamedKey, Name: name}
}

func Positional(i int) Key {
	return Key{Kind: PositionalKey, Index: i}
}

// String returns the canonical rendering of k.
func (k Key) String() string {
	if k.Kind == PositionalKey {
		return strconv.Itoa(k.Index)
	}
	return k.Name
}

func (k Key) IsPositional() bool {
	return k.Kind == PositionalKey
}

// Equal reports whether k and o address the same entry.
func (k Key) Equal(o Key) bool {
	if k.Kind == o.Kind {
		if k.Kind == PositionalKey {
			return k.Index == o.Index
		}
		return k.Name == o.Name
	}
	return k.String() == o.String()
}

// AtIndex reports whether k renders as the decimal form of i.
func (k Key) AtIndex(i int) bool {
	if k.Kind == PositionalKey {
		return k.Index == i
	}
	return k.Name == strconv.Itoa(i)
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(d []byte) error {
	*k = Named(string(d))
	return nil
}
