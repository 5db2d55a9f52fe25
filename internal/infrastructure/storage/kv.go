// Package storage is the key-value persistence collaborator: whole
// JSON documents stored under string keys, read back into caller
// defaults when missing or undecodable.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrKeyNotFound is returned by Get when no document exists for a key.
var ErrKeyNotFound = errors.New("storage: key not found")

// KV stores JSON documents by key. Implementations must leave out
// untouched when they return an error, so callers keep their defaults.
type KV interface {
	// Get decodes the document stored under key into out.
	Get(key string, out any) error
	// Set encodes value and stores it under key, replacing any
	// previous document.
	Set(key string, value any) error
	// Close releases the underlying resources.
	Close() error
}

// decodeDocument unmarshals into a fresh value and copies it into out
// only on success. json.Unmarshal fills fields as it goes, so decoding
// straight into out would leave a half-decoded document behind a
// failure and break the Get contract above.
func decodeDocument(key string, data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("storage: decode target for %s must be a non-nil pointer", key)
	}
	tmp := reflect.New(rv.Type().Elem())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		return fmt.Errorf("storage: failed to decode %s: %w", key, err)
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}
