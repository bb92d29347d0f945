// Package text provides the shared text cleaner used by the source
// normalisers and the chunker. It strips markup, bare URLs and forum noise
// (quoted replies, mentions, fenced code) and collapses whitespace.
package text
