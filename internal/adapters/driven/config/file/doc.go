// Package file provides the TOML-backed configuration store.
//
// Settings live in ~/.vitae/config.toml as ordinary TOML tables:
//
//	[embedding]
//	provider = "ollama"
//	model = "nomic-embed-text"
//
// and are addressed with dot-notation keys such as "embedding.provider".
package file
