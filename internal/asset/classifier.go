package asset

import (
	"strings"

	"github.com/imgbed/service/internal/metadata"
)

// Backend is the physical store holding a file's payload.
type Backend int

const (
	// BackendTelegram keeps the payload as a Telegram channel message.
	BackendTelegram Backend = iota
	// BackendR2 keeps the payload in object storage.
	BackendR2
)

func (b Backend) String() string {
	if b == BackendR2 {
		return metadata.StorageR2
	}
	return metadata.StorageTelegram
}

// Classify picks the backend for a resolved file. Telegram is the default.
func Classify(id string, rec *metadata.Record) Backend {
	if strings.HasPrefix(id, PrefixR2) {
		return BackendR2
	}
	if rec.HasMetadata() {
		md := rec.Metadata
		if md.StorageType == metadata.StorageR2 || md.Storage == metadata.StorageR2 {
			return BackendR2
		}
	}
	return BackendTelegram
}
