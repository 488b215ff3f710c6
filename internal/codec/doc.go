/*
Package codec implements the type-driven Store/Restore rules used to
checkpoint arbitrary state over a raw byte channel.

A Rule[T] knows how to write a T to an Encoder and read it back from a
Decoder. Rules compose: Slice, Map, Pair, Array and Atomic take the rules of
their elements, and Ref turns a pointer into the live graph into the
absolute path of the referenced node.

The stream carries no framing beyond what each rule writes. Numbers are
little-endian and fixed-size; slices, maps and text carry a uint64 count
prefix; arrays do not. A reader must walk the same rules in the same order
as the writer or the stream desynchronizes.

New types plug in through Func or by registering a rule with a Registry; no
existing rule has to change.
*/
package codec
