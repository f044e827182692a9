// Package domain defines the data models and interfaces shared across edufair.
// It contains plain types (rows, booths, slots, registrations) and contracts
// (stores, senders) only.
package domain
