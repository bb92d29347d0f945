// Package connectors provides the loaders that read pipeline inputs from
// local files, and the factory the pipeline service uses to create them.
//
// Each subpackage knows one input format: course page metadata plus
// markdown files, or a forum posts export.
package connectors
