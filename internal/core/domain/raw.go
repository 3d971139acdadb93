package domain

// RawDocument represents opaque bytes handed over by an upload.
// It is the input of text extraction.
type RawDocument struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	// May be empty, in which case it is derived from the URI extension.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
