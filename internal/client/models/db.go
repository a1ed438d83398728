// Package models defines the rows of the client's local database.
//
// The backup engine treats these rows as opaque records: encrypted columns
// are copied byte for byte and never decrypted.
package models

// Entry is a versioned envelope persisted locally and synced with the server.
// Encrypted fields store AEAD ciphertext alongside their nonces.
type Entry struct {
	// Id is a globally unique identifier for the entry.
	Id string

	// Version is the monotonic, server-assigned version used for sync/merge.
	Version int64

	// Deleted marks the entry as a tombstone (kept for conflict-free sync).
	Deleted bool

	// Overview contains encrypted, short summary bytes (human preview).
	Overview []byte
	// NonceOverview is the AEAD nonce for Overview.
	NonceOverview []byte

	// Details contains encrypted, full payload bytes (type-specific).
	Details []byte
	// NonceDetails is the AEAD nonce for Details.
	NonceDetails []byte

	// UpdatedAt is the last modification time in unix milliseconds,
	// nil for entries that were never synchronized.
	UpdatedAt *int64

	// IsFile indicates that this entry represents a binary file payload.
	IsFile bool

	// Pending marks local changes not yet pushed to the server.
	Pending bool
}

// MetadataItem is a single key/value pair of the local metadata table.
// Value may be nil.
type MetadataItem struct {
	Key   string
	Value []byte
}

// Session identifies the signed-in account of the local client.
type Session struct {
	UserID   string
	ClientID string
	Username string
}
