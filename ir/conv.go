package ir

import (
	"strconv"
	"strings"
)

// Leaves are always text; the getters below convert at the call and fall
// back to def when the path is absent, not a leaf, or does not parse.

func (y *Node) leaf(path []string) (string, bool) {
	x := y.GetNode(path...)
	if x == nil || x.Type != StringType {
		return "", false
	}
	return strings.TrimSpace(x.String), true
}

func (y *Node) GetStringOr(def string, path ...string) string {
	x := y.GetNode(path...)
	if x == nil || x.Type != StringType {
		return def
	}
	return x.String
}

func (y *Node) GetInt(def int, path ...string) int {
	s, ok := y.leaf(path)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func (y *Node) GetInt64(def int64, path ...string) int64 {
	s, ok := y.leaf(path)
	if !ok {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func (y *Node) GetFloat64(def float64, path ...string) float64 {
	s, ok := y.leaf(path)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// GetBool accepts the forms understood by strconv.ParseBool.
func (y *Node) GetBool(def bool, path ...string) bool {
	s, ok := y.leaf(path)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
