// Package driven defines the outbound port interfaces consumed by core
// services. Adapters (remote API clients, SQLite, memory) implement them.
package driven
