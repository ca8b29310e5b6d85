// Package remote implements the driven store ports against the managed
// backend's HTTP data API. Reads are filter queries over the documents
// table, writes are row inserts, and the popular-documents aggregate is a
// remote procedure call. Every operation is a single round trip with no
// caching and no retry.
package remote
