package hcl

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/simcore/internal/config"
	"github.com/specialistvlad/simcore/internal/ctxlog"
	"github.com/specialistvlad/simcore/internal/fsutil"
)

// ErrNoConfigFiles is returned when none of the given paths holds an .hcl
// file.
var ErrNoConfigFiles = errors.New("no configuration files found")

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges their blocks into one
// model. The runtime and storage blocks may appear at most once across all
// files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w in %q", ErrNoConfigFiles, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	evalCtx := evalContext()
	var runtimeFrom, storageFrom string

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Runtime != nil {
			if runtimeFrom != "" {
				return nil, nil, fmt.Errorf("duplicate runtime block in %s, first defined in %s", file, runtimeFrom)
			}
			runtimeFrom = file
			model.Runtime = translateRuntime(root.Runtime)
		}
		if root.Storage != nil {
			if storageFrom != "" {
				return nil, nil, fmt.Errorf("duplicate storage block in %s, first defined in %s", file, storageFrom)
			}
			storageFrom = file
			model.Storage = config.Storage{Dir: root.Storage.Dir, Compression: root.Storage.Compression}
		}
		for _, lib := range root.Libraries {
			model.Libraries = append(model.Libraries, &config.Library{Name: lib.Name})
		}
		for _, m := range root.Models {
			inst, err := translateModel(m)
			if err != nil {
				return nil, nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Models = append(model.Models, inst)
		}
		for _, c := range root.Connections {
			model.Connections = append(model.Connections, &config.Connection{Source: c.Source, Sink: c.Sink})
		}
		model.Execute = append(model.Execute, root.Execute...)
	}

	logger.Debug("HCL loading complete.",
		"libraries", len(model.Libraries),
		"models", len(model.Models),
		"connections", len(model.Connections),
		"entry_points", len(model.Execute),
	)
	return model, NewConverter(), nil
}

// findAllHCLFiles returns every .hcl file named by or found under paths,
// each once, in the order given.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return all, nil
}
