package ir

import "errors"

var (
	ErrNotObject = errors.New("not an object")
	ErrPath      = errors.New("bad key path")
	ErrJSON      = errors.New("unsupported json")
)
