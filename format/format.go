// Package format enumerates the textual formats a tree can be read from or
// written to.
package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	KVSFormat Format = iota
	JSONFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"k":    KVSFormat,
		"kvs":  KVSFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case KVSFormat:
		return []byte("kvs"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsKVS() bool  { return f == KVSFormat }
func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case KVSFormat:
		return ".kvs"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// FromSuffix guesses the format of a file name by its extension, defaulting
// to KVS.
func FromSuffix(name string) Format {
	for _, f := range AllFormats() {
		s := f.Suffix()
		if len(name) > len(s) && name[len(name)-len(s):] == s {
			return f
		}
	}
	if len(name) > 4 && name[len(name)-4:] == ".yml" {
		return YAMLFormat
	}
	return KVSFormat
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{KVSFormat, JSONFormat, YAMLFormat}
}
