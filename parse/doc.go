// Package parse parses KVS text into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse([]byte(`host[ip=127.0.0.1;port=80;]`))
//	if err != nil {
//	    return err
//	}
//	node.Get("host", "port") // "80"
//
// Parsing is permissive. Irregular input such as an unclosed '[' or a value
// missing its ';' yields a partial tree and no error. Irregularities can be
// collected with [ParseDiagnostics], or turned into an error with
// [ParseStrict]. Nesting deeper than [DefaultMaxDepth] (see [ParseMaxDepth])
// stops the parse with an error wrapping [ErrMaxDepth]; the tree built so
// far is returned alongside it.
//
// Entries written without a key get positional keys from a counter kept per
// nesting level. The counter starts at 0 and advances once per blank key,
// whether the entry is a value or a nested structure:
//
//	=x;=y;a=z;[b=1;]   // {0: x, 1: y, a: z, 2: {b: 1}}
//
// Text after a '~' in key position is meta data and is discarded.
//
// JSON and YAML input are accepted with [ParseJSON] and [ParseYAML].
//
// # Streaming
//
// A [Decoder] reads a bounded number of top level entries at a time from
// an io.Reader, leaving the rest for later calls.
//
// # Related Packages
//
//   - github.com/signadot/kvs-format/go-kvs/ir - IR representation
//   - github.com/signadot/kvs-format/go-kvs/encode - Encode IR to text
//   - github.com/signadot/kvs-format/go-kvs/token - Positions and escaping
package parse
