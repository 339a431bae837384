// Package fieldpath implements the logical path value type used to address
// nodes in a field tree.
//
// Paths are immutable, slash-separated and kept in normal form: absolute
// paths start with "/", "." segments are elided, ".." segments collapse
// against the preceding non-".." segment when there is one, and an empty
// relative path is ".".
package fieldpath
