// Package storage provides the persistence medium behind the record and
// session stores: a named-key JSON blob store with swappable backends.
//
// Every mutation in the data layer rewrites a whole collection under its key,
// so values stay small and writes are always whole-value. Nothing locks the
// medium across processes; if two instances share a backend the last writer
// wins.
package storage

import "errors"

// ErrKeyNotFound is returned by Read when a key has never been written.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store persists named JSON blobs.
type Store interface {
	// Read returns the value stored under key, or ErrKeyNotFound.
	Read(key string) ([]byte, error)
	// Write replaces the value stored under key.
	Write(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases backend resources.
	Close() error
}
