// Package docsearch provides client-side documentation search.
// It extracts searchable records and LLM context chunks from a static HTML
// documentation site, serves keyword search over the records with an
// in-memory inverted index, and assembles retrieved chunks into context for
// question answering.
//
// This package contains domain types, interfaces and the pure algorithms
// shared by the indexer and the query side, following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package docsearch
