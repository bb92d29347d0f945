// Package file provides the TOML configuration file for tdsprep.
//
// Nested tables are flattened into dot-notation keys, so
//
//	[chunker]
//	chunk_size = 800
//
// is read as "chunker.chunk_size".
package file
