// Package domain defines the core business entities of the review engine:
// flashcards and their scheduling state, rating inputs, and the per-session
// review queue. Entities carry their own validation; scheduling transitions
// live in the srs subpackage.
package domain
