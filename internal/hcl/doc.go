// Package hcl provides the HCL implementation of the configuration loading
// and value binding interfaces defined in the `config` package. It is
// responsible for file parsing, HCL-to-model translation, and cty-to-Go
// data binding.
package hcl
