package asset

import (
	"context"
	"fmt"
	"strings"

	"github.com/imgbed/service/internal/metadata"
	"github.com/imgbed/service/internal/storage"
)

// MessageDeleter removes a payload message from the messaging backend. The
// bool reports an explicit acknowledgement from the remote service.
type MessageDeleter interface {
	DeleteMessage(ctx context.Context, chatID string, messageID int) (bool, error)
}

// Bindings are the collaborators a deletion runs against. Objects and
// Messages may be nil when the corresponding backend is not configured.
type Bindings struct {
	Store    metadata.Store
	Objects  storage.Storage
	Messages MessageDeleter
	ChatID   string
}

// Target is a resolved file ready for deletion.
type Target struct {
	ID     string
	Key    string
	Record *metadata.Record
}

// Outcome describes a completed deletion.
type Outcome struct {
	ID      string
	Key     string
	Backend Backend
	Message string

	// R2 only.
	ObjectKey string

	// Telegram only.
	TelegramDeleteAttempted bool
	TelegramDeleted         bool
	TelegramError           string
	Warning                 string
}

// executor deletes a file from one backend.
type executor interface {
	Delete(ctx context.Context, t Target) (*Outcome, error)
}

func newExecutor(backend Backend, b Bindings) executor {
	if backend == BackendR2 {
		return objectStoreExecutor{store: b.Store, objects: b.Objects}
	}
	return messageExecutor{store: b.Store, messages: b.Messages, chatID: b.ChatID}
}

type objectStoreExecutor struct {
	store   metadata.Store
	objects storage.Storage
}

// Delete removes the object, then the metadata entry. Metadata survives a
// failed object delete so the request can be retried.
func (e objectStoreExecutor) Delete(ctx context.Context, t Target) (*Outcome, error) {
	if e.objects == nil {
		return nil, ErrObjectStoreNotConfigured
	}
	objectKey := objectKeyFor(t)
	if objectKey == "" {
		return nil, ErrEmptyObjectKey
	}

	if err := e.objects.Delete(ctx, objectKey); err != nil {
		return nil, &ObjectDeleteError{ObjectKey: objectKey, Err: err}
	}
	// The payload is gone; a client disconnect must not leave the record behind.
	if err := e.store.Delete(context.WithoutCancel(ctx), t.Key); err != nil {
		return nil, fmt.Errorf("delete metadata %q: %w", t.Key, err)
	}

	return &Outcome{
		ID:        t.ID,
		Key:       t.Key,
		Backend:   BackendR2,
		Message:   "File deleted from R2 storage",
		ObjectKey: objectKey,
	}, nil
}

// objectKeyFor picks the object key: the explicit r2Key, then the storage key
// without its r2: prefix, then the id without its r2: prefix, then the raw id.
func objectKeyFor(t Target) string {
	if t.Record.HasMetadata() && t.Record.Metadata.R2Key != "" {
		return t.Record.Metadata.R2Key
	}
	if strings.HasPrefix(t.Key, PrefixR2) {
		if k := strings.TrimPrefix(t.Key, PrefixR2); k != "" {
			return k
		}
	}
	if strings.HasPrefix(t.ID, PrefixR2) {
		if k := strings.TrimPrefix(t.ID, PrefixR2); k != "" {
			return k
		}
	}
	return t.ID
}

type messageExecutor struct {
	store    metadata.Store
	messages MessageDeleter
	chatID   string
}

// Delete removes the Telegram message best-effort and the metadata entry
// always. The metadata delete runs once, after the message attempt, whatever
// that attempt did.
func (e messageExecutor) Delete(ctx context.Context, t Target) (out *Outcome, err error) {
	out = &Outcome{
		ID:      t.ID,
		Key:     t.Key,
		Backend: BackendTelegram,
	}

	defer func() {
		// Detached so a client disconnect cannot leave the record behind.
		if derr := e.store.Delete(context.WithoutCancel(ctx), t.Key); derr != nil {
			out, err = nil, fmt.Errorf("delete metadata %q: %w", t.Key, derr)
		}
	}()

	var messageID metadata.MessageID
	if t.Record.HasMetadata() {
		messageID = t.Record.Metadata.TelegramMessageID
	}
	if messageID == 0 {
		out.Message = "File metadata deleted; no Telegram message was recorded"
		return out, nil
	}

	out.TelegramDeleteAttempted = true
	acked, rerr := e.deleteMessage(ctx, int(messageID))
	switch {
	case rerr != nil:
		out.TelegramError = rerr.Error()
	case !acked:
		out.TelegramError = "telegram did not acknowledge the deletion"
	default:
		out.TelegramDeleted = true
	}

	if out.TelegramDeleted {
		out.Message = "File deleted from Telegram and metadata removed"
	} else {
		out.Message = "File metadata deleted"
		out.Warning = "The Telegram message could not be deleted and may still exist in the channel"
	}
	return out, nil
}

// deleteMessage never panics; a panic in the transport becomes an error.
func (e messageExecutor) deleteMessage(ctx context.Context, messageID int) (acked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			acked, err = false, fmt.Errorf("telegram delete panicked: %v", r)
		}
	}()
	if e.messages == nil {
		return false, ErrTelegramNotConfigured
	}
	return e.messages.DeleteMessage(ctx, e.chatID, messageID)
}
