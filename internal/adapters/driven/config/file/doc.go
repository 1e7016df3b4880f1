// Package file provides a TOML file-based configuration store.
//
// Configuration lives at ~/.librarian/config.toml by default. Nested TOML
// tables flatten to dot-notation keys, so [embedding] model = "x" is read
// as "embedding.model". Every Set persists immediately; the current
// collection selector ("collection") lives here too.
package file
