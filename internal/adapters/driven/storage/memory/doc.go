// Package memory provides in-memory adapters for tests and dry runs.
package memory
