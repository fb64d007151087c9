package parse

import (
	"errors"
)

var (
	ErrParse    = errors.New("parse error")
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)
