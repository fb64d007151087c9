package token

import (
	"bytes"
	"io"
)

// Source reads a KVS document one byte at a time.
type Source struct {
	r   io.ByteScanner
	pos Pos
}

func NewSource(r io.ByteScanner) *Source {
	return &Source{r: r}
}

func NewBytesSource(d []byte) *Source {
	return NewSource(bytes.NewReader(d))
}

// Next consumes and returns the next byte. At end of input it returns
// io.EOF.
func (s *Source) Next() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.pos.advance(c)
	return c, nil
}

// Peek returns the next byte without consuming it.
func (s *Source) Peek() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if err := s.r.UnreadByte(); err != nil {
		return 0, err
	}
	return c, nil
}

// Pos returns the position of the next byte.
func (s *Source) Pos() Pos {
	return s.pos
}
