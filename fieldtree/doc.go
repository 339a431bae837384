// Package fieldtree provides the reference logical field tree used as the
// decode target and encode source for the codec engine.
package fieldtree
