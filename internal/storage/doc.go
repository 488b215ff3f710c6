// Package storage provides the byte channels checkpoints are written to and
// read from: a file pair addressed by directory and file name, optionally
// zstd compressed, and an in-memory Buffer.
package storage
