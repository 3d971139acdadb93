// Package normalisers provides implementations of the Normaliser interface
// for the file formats users upload: plain text, Markdown, HTML, DOCX and PDF.
// Each normaliser extracts the text of one family of MIME types.
//
// Normalisers are registered with a Registry at startup, which picks the
// highest priority normaliser for a document's MIME type.
package normalisers
