// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): text extraction, chunking, embedding,
// the vector store, the tracking store, configuration, and the external
// document converter.
package driven
