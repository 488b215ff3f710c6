// Package counter is a small component library: counters that accumulate
// samples and a manager that aggregates them. It is linked into the binary
// as a static module and also built as a dynamic plugin from
// plugins/counter.
package counter
