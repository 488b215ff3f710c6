package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext exposes a small set of pure functions to configuration files,
// e.g. `samples = range(4)`.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"abs":    stdlib.AbsoluteFunc,
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"length": stdlib.LengthFunc,
			"lower":  stdlib.LowerFunc,
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"range":  stdlib.RangeFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}
