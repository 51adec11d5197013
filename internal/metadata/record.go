// Package metadata provides access to the key-value records that describe
// where each uploaded file's payload lives.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Storage type values written at upload time.
const (
	StorageR2       = "r2"
	StorageTelegram = "telegram"
)

// ErrNotFound is returned when no entry exists under a key.
var ErrNotFound = errors.New("metadata not found")

// Store is the key-value store holding one record per storage key.
type Store interface {
	// Get returns the record stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Record, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// Record is a raw value together with its structured attributes.
// Metadata is nil when the entry was written without attributes.
type Record struct {
	Key      string
	Value    string
	Metadata *Metadata
}

// HasMetadata reports whether the record carries attributes.
func (r *Record) HasMetadata() bool {
	return r != nil && r.Metadata != nil
}

// Metadata holds the attributes attached to a stored file.
type Metadata struct {
	StorageType       string    `json:"storageType,omitempty"`
	Storage           string    `json:"storage,omitempty"` // legacy alias of StorageType
	R2Key             string    `json:"r2Key,omitempty"`
	TelegramMessageID MessageID `json:"telegramMessageId,omitempty"`
	FileName          string    `json:"fileName,omitempty"`
	FileSize          int64     `json:"fileSize,omitempty"`
	TimeStamp         int64     `json:"TimeStamp,omitempty"`
}

// MessageID references the Telegram message holding a payload. Zero means unset.
// Older records store it as a string, newer ones as a number.
type MessageID int

// UnmarshalJSON accepts a number, a numeric string, an empty string or null.
func (m *MessageID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode message id: %w", err)
		}
		if s == "" {
			*m = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("decode message id %q: %w", s, err)
		}
		*m = MessageID(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode message id: %w", err)
	}
	*m = MessageID(n)
	return nil
}

// decodeMetadata parses a JSON attribute blob. Absent and null blobs yield nil.
func decodeMetadata(raw []byte) (*Metadata, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &md, nil
}
