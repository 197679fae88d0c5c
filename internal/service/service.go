// Package service contains the business logic.
//
// It sits behind the handler layer. It receives validated records from the
// handlers, applies the chatbot's rules and builds the response records.
package service
