// Package store defines the persistence boundary of the review engine:
// the CardStore interface, shared store errors, and transaction helpers.
// Implementations live under internal/platform.
package store
