// Package enricher provides the post-processor that adds derived metadata
// to chunks: the URL domain, a quality score and a content type.
package enricher
