// Command counter builds the counter library as a dynamic plugin. The
// simcore binary already links the library as "counter", so the plugin is
// built under another name:
//
//	go build -buildmode=plugin -o plugins/libcounter_dyn.so ./plugins/counter
//
// and loaded with `library "counter_dyn" {}`.
package main

import (
	"github.com/specialistvlad/simcore/internal/plugin"
	"github.com/specialistvlad/simcore/internal/types"
	"github.com/specialistvlad/simcore/modules/counter"
)

// ABIVersion is the library contract version this plugin was built for.
var ABIVersion = plugin.ABIVersion

var module counter.Module

func Initialise(rt plugin.Runtime, reg *types.Registry) bool {
	return module.Initialise(rt, reg)
}

func Finalise(rt plugin.Runtime) bool {
	return module.Finalise(rt)
}

func main() {}
