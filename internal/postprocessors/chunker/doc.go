// Package chunker provides the chunking post-processor.
//
// Course documents are first split at markdown headings (the heading path is
// kept as "Header 1".."Header 4" metadata), then each section is split into
// bounded, overlapping windows. Forum documents are size-split only. Every
// chunk carries a doc_id that is the content hash of its final text.
package chunker
