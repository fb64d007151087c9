// Package kvs reads and writes KVS documents.
//
// KVS is a bracket and semicolon delimited text format for nested key value
// data:
//
//	host[ip=127.0.0.1;port=80;]tags[=web;=edge;]
//
// An entry is either "key=value;" or "key[...]". A ';' inside a value is
// written ";;". A blank key is replaced by the next free position at its
// level, so "=a;=b;" holds the keys 0 and 1, and the encoder drops keys
// which the parser would give back.
//
// A KVS wraps a tree from package ir together with its canonical text. The
// parse and encode packages hold the transforms, and libdiff, eval and
// gomap build on the tree.
package kvs
