// Package pipeline implements the five retrieval stages that rank stored
// résumés against a job description:
//
//  1. Clean: case-fold and collapse whitespace into StructuredContent
//  2. Ingest: embed every document, one matrix row per document
//  3. Train: fit a retrieval model (currently a pass-through)
//  4. Predict: cosine similarity against the query, top-k
//  5. Evaluate: precision, recall and F1 against a relevant set
//
// Stages operate on in-memory slices and never touch the store. The only
// side effect is calling the Embedder, whose failures are logged and turned
// into empty vectors so one bad document cannot halt a run.
//
// # Alignment
//
// Every stage keeps vectors[i] paired with documents[i]. Documents are
// never dropped or reordered before Predict.
package pipeline
