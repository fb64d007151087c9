// Package token provides the lexical layer of the KVS format.
//
// KVS has five structural bytes, [KeyEnd], [ValueEnd], [StructStart],
// [StructEnd] and [MetaStart]; everything else is key or value text.
// [Source] is a byte cursor with one byte of lookahead and position
// tracking, used by the parser over both in-memory documents and streams.
//
// [Escape] and [Unescape] implement the only escaping rule of the format: a
// literal ';' inside a value is written as ";;".
package token
