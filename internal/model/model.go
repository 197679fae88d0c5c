// Package model declares the records exchanged with API clients.
//
// Records are built at the boundary with the New* constructors (or bound by
// the handler pipeline), so code downstream never re-checks their shape.
// None of them are persisted and none are mutated after construction.
package model
