package token

import "strings"

var escDouble = string([]byte{ValueEnd, ValueEnd})

// Escape doubles every value terminator in v.
func Escape(v string) string {
	if !NeedsEscape(v) {
		return v
	}
	return strings.ReplaceAll(v, string(ValueEnd), escDouble)
}

func NeedsEscape(v string) bool {
	return strings.IndexByte(v, ValueEnd) != -1
}

// Unescape collapses each ";;" pair of an escaped value body.
func Unescape(v string) string {
	if !strings.Contains(v, escDouble) {
		return v
	}
	return strings.ReplaceAll(v, escDouble, string(ValueEnd))
}
