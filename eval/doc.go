// Package eval evaluates expressions over KVS documents.
//
// Expressions use the github.com/expr-lang/expr language. Inside an
// expression the following functions are available in addition to the
// variables of the [Env]:
//
//	whereami()        key path of the node being evaluated, as in "$.a.b"
//	get("a", "b")     leaf text at the key path, relative to the root
//	getpath("$.a.b")  node at a textual key path, relative to the root
//	keys("a")         keys of the object at the key path
//	exists("a", "b")  whether the key path is present
//	getenv("HOME")    process environment lookup
//
// [ExpandString] and [ExpandEnv] replace "$[expr]" in text with the result
// of expr. A leaf consisting only of ".[expr]" is replaced by the value of
// expr, which may be an object.
//
// [LoadEnv] reads the evaluation environment from the KVS_ENV environment
// variable.
package eval
