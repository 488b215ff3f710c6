/*
Package plugin loads component libraries and runs their Initialise and
Finalise functions.

A dynamic library is a Go plugin built with -buildmode=plugin that exports:

	func Initialise(rt plugin.Runtime, reg *types.Registry) bool
	func Finalise(rt plugin.Runtime) bool

and optionally a string variable ABIVersion checked against the manager's
semver constraint. Libraries are addressed by logical name; the file name is
derived from the platform convention (libNAME.so, libNAME.dylib, NAME.dll).

Libraries linked into the binary register as Modules under a logical name
and are preferred over files with the same name.
*/
package plugin
