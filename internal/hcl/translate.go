package hcl

import (
	"fmt"

	"github.com/specialistvlad/simcore/internal/config"
)

func translateRuntime(b *runtimeBlock) config.Runtime {
	return config.Runtime{
		Name:        b.Name,
		Description: b.Description,
		PluginDir:   b.PluginDir,
		ABI:         b.ABI,
	}
}

func translateModel(b *modelBlock) (*config.Instance, error) {
	inst := &config.Instance{
		Name:        b.Name,
		Factory:     b.Factory,
		Description: b.Description,
		Container:   b.Container,
	}
	if b.Fields == nil || b.Fields.IsNull() {
		return inst, nil
	}

	ty := b.Fields.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("model %q: fields must be an object, got %s", b.Name, ty.FriendlyName())
	}
	if !b.Fields.IsWhollyKnown() {
		return nil, fmt.Errorf("model %q: fields must be known when the configuration is loaded", b.Name)
	}
	inst.Fields = b.Fields.AsValueMap()
	return inst, nil
}
