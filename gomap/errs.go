package gomap

import "errors"

var (
	ErrUnsupported = errors.New("unsupported go type")
	ErrConvert     = errors.New("conversion error")
)
