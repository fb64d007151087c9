// Package gomap maps Go values to and from KVS trees.
//
// Struct fields are named by their `kvs:"name"` tag, or by the field name
// when there is no tag. A tag of "-" skips the field and the option
// "omitempty" skips zero values when encoding:
//
//	type Host struct {
//		IP   string `kvs:"ip"`
//		Port int    `kvs:"port,omitempty"`
//	}
//
// Leaves are text, so scalar fields are converted with strconv. Slices and
// arrays take the values of an object in order, and maps with string keys
// take its entries.
package gomap
