// Package encode encodes IR nodes to KVS text.
//
// # Usage
//
//	node := ir.NewObject()
//	node.SetString("127.0.0.1", "host", "ip")
//	node.AddString("x")
//
//	// Compact: host[ip=127.0.0.1;]=x;
//	err := encode.Encode(node, w)
//
//	// Pretty, one entry per line, tab indented:
//	//
//	//	host
//	//	[
//	//		ip=127.0.0.1;
//	//	]
//	//	=x;
//	err = encode.Encode(node, w, encode.EncodePretty(true))
//
// Every ';' in a leaf is doubled. Keys matching their position are left
// out unless [EncodeForceKeys] is given, and [EncodeWrap] encloses the
// whole document in one more named structure. JSON and YAML output are
// selected with [EncodeFormat].
//
// # Related Packages
//
//   - github.com/signadot/kvs-format/go-kvs/ir - IR representation
//   - github.com/signadot/kvs-format/go-kvs/parse - Parse text to IR
package encode
