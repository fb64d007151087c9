package encode

import "github.com/signadot/kvs-format/go-kvs/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodePretty puts each entry on its own line, indented per depth.
func EncodePretty(v bool) EncodeOption {
	return func(es *EncState) { es.pretty = v }
}

// EncodeIndent sets the indentation unit of pretty output.
func EncodeIndent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

// EncodeForceKeys writes every key, including positional ones.
func EncodeForceKeys(v bool) EncodeOption {
	return func(es *EncState) { es.forceKeys = v }
}

// EncodeWrap encloses the output in key[...].
func EncodeWrap(key string) EncodeOption {
	return func(es *EncState) { es.wrap = &key }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
