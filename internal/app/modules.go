package app

import (
	"github.com/specialistvlad/simcore/internal/plugin"
	"github.com/specialistvlad/simcore/modules/counter"
)

// coreModules are the component libraries compiled into the binary, keyed
// by the name a `library` block loads them under.
var coreModules = map[string]plugin.Module{
	counter.LibraryName: &counter.Module{},
}
