package parse

import (
	"fmt"

	"github.com/signadot/kvs-format/go-kvs/token"
)

type DiagKind int

const (
	UnmatchedClose DiagKind = iota
	UnclosedOpen
	UnterminatedValue
	StrayValueEnd
	TooDeep
)

func (k DiagKind) String() string {
	switch k {
	case UnmatchedClose:
		return "unmatched ']'"
	case UnclosedOpen:
		return "unclosed '['"
	case UnterminatedValue:
		return "value not terminated by ';'"
	case StrayValueEnd:
		return "stray ';' in key"
	case TooDeep:
		return "nesting too deep"
	}
	return "<unknown diagnostic>"
}

// Diagnostic is an irregularity the parser recovered from.
type Diagnostic struct {
	Kind DiagKind
	Pos  token.Pos
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %s", d.Kind, d.Pos)
}
