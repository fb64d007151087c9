package token

const (
	KeyEnd      byte = '='
	ValueEnd    byte = ';'
	StructStart byte = '['
	StructEnd   byte = ']'
	MetaStart   byte = '~'
)

// IsStructural reports whether c has meaning in key position.
func IsStructural(c byte) bool {
	switch c {
	case KeyEnd, ValueEnd, StructStart, StructEnd, MetaStart:
		return true
	}
	return false
}

func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
