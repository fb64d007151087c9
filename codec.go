package kvs

import (
	"errors"
	"io"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"
)

// MarshalJSON encodes the tree as an ordered JSON object.
func (k *KVS) MarshalJSON() ([]byte, error) {
	return ir.ToJSON(k.node)
}

func (k *KVS) UnmarshalJSON(d []byte) error {
	n, err := ir.FromJSON(d)
	if err != nil {
		return err
	}
	if !n.IsObject() {
		n = ir.NewObject()
	}
	k.node = n
	k.Touch()
	return nil
}

func (k *KVS) MarshalText() ([]byte, error) {
	s, err := k.Text()
	return []byte(s), err
}

// UnmarshalText parses d strictly.
func (k *KVS) UnmarshalText(d []byte) error {
	n, err := parse.Parse(d, parse.ParseStrict())
	if err != nil {
		return err
	}
	k.node = n
	k.Touch()
	return nil
}

type countReader struct {
	r io.Reader
	n int64
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ReadFrom replaces the document with the entries read from r until EOF.
func (k *KVS) ReadFrom(r io.Reader) (int64, error) {
	cr := &countReader{r: r}
	n := ir.NewObject()
	_, err := parse.NewDecoder(cr).Decode(n, -1)
	if err != nil && !errors.Is(err, io.EOF) {
		return cr.n, err
	}
	k.node = n
	k.Touch()
	return cr.n, nil
}

// WriteTo writes the compact text to w.
func (k *KVS) WriteTo(w io.Writer) (int64, error) {
	s, err := k.Text()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, s)
	return int64(n), err
}

// Encode writes the document to w with opts.
func (k *KVS) Encode(w io.Writer, opts ...encode.EncodeOption) error {
	return encode.Encode(k.node, w, opts...)
}
