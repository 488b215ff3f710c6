package hcl

import "github.com/zclconf/go-cty/cty"

// fileRoot decodes every top-level block a file may contain. Anything else
// is rejected.
type fileRoot struct {
	Runtime     *runtimeBlock   `hcl:"runtime,block"`
	Storage     *storageBlock   `hcl:"storage,block"`
	Libraries   []*libraryBlock `hcl:"library,block"`
	Models      []*modelBlock   `hcl:"model,block"`
	Connections []*connectBlock `hcl:"connect,block"`
	Execute     []string        `hcl:"execute,optional"`
}

type runtimeBlock struct {
	Name        string `hcl:"name,optional"`
	Description string `hcl:"description,optional"`
	PluginDir   string `hcl:"plugin_dir,optional"`
	ABI         string `hcl:"abi,optional"`
}

type storageBlock struct {
	Dir         string `hcl:"dir,optional"`
	Compression string `hcl:"compression,optional"`
}

type libraryBlock struct {
	Name string `hcl:"name,label"`
}

type modelBlock struct {
	Name        string     `hcl:"name,label"`
	Factory     string     `hcl:"factory"`
	Description string     `hcl:"description,optional"`
	Container   string     `hcl:"container,optional"`
	Fields      *cty.Value `hcl:"fields,optional"`
}

type connectBlock struct {
	Source string `hcl:"source"`
	Sink   string `hcl:"sink"`
}
