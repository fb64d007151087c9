package token

import "fmt"

// Pos is a position in a KVS document. Line and Col are 0 based, Col
// counts runes.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) LineCol() (int, int) {
	return p.Line, p.Col
}

func (p Pos) String() string {
	return fmt.Sprintf("offset %d (line=%d, col=%d)", p.Offset, p.Line, p.Col)
}

func (p *Pos) advance(c byte) {
	p.Offset++
	if c == '\n' {
		p.Line++
		p.Col = 0
		return
	}
	// utf8 continuation bytes do not start a new column
	if c&0xC0 != 0x80 {
		p.Col++
	}
}
