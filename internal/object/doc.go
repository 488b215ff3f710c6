// Package object defines the identity shared by every addressable node of the
// runtime graph: a validated name, a free-form description and a non-owning
// link to the parent node.
//
// Names follow one of two grammars:
//
//	[A-Za-z][A-Za-z0-9_]*   plain identifier, e.g. "counter_1"
//	\[[0-9]+\]              bracketed index, e.g. "[4]"
//
// Anything else is rejected when the node is constructed, before any other
// state is set.
package object
