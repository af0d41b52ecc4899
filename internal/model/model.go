// Package model defines the domain models for Hopstack.
package model

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// Database keys. The chain and the history journal are each one record.
const (
	KeyChain   = "chain"
	KeyJournal = "journal"
)
