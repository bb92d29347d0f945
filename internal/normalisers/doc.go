// Package normalisers provides the registry that routes raw documents to
// the Normaliser for their source. Each normaliser turns one kind of raw
// input (course markdown or forum post) into a domain.Document.
//
// Normalisers are registered with the Registry at startup.
package normalisers
