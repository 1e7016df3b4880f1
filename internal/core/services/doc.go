// Package services implements the core business logic: the ingestion
// pipeline orchestrating hashing, dedup, extraction, chunking, embedding
// and upserts, and the collection checkout service.
package services
