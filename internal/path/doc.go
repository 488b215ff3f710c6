// internal/path/doc.go

/*
Package path provides a structured representation of the string addresses
used to navigate the runtime graph.

A path is a `/`-separated sequence of segments. Absolute paths begin with
`/`, relative paths never do. Segments are:

	.         the current node
	..        the parent of the current node
	name      a named container, reference, field or element
	[3]       a zero-based index into what the previous segment addressed

e.g. `/Models/counters/[0]/count` or `../other/count`.

This package only parses and formats paths; walking the live graph is the
job of the resolver package.
*/
package path
