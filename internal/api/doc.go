// Package api provides the HTTP handlers for the review engine: starting a
// review session over a deck's due cards, reading the current card, and
// submitting ratings until the session is exhausted.
package api
