// Package asset deletes uploaded files from whichever backend holds them.
//
// A deletion resolves the caller's file id to a metadata record, classifies
// the record as R2 (object storage) or Telegram (channel message), and runs
// the matching executor. R2 deletions remove the object before the metadata
// and stop if the object delete fails. Telegram deletions always remove the
// metadata, treating the message delete as best-effort.
package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imgbed/service/internal/metrics"
)

// Service orchestrates file deletions.
type Service struct {
	bindings Bindings
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewService creates a Service. m may be nil.
func NewService(b Bindings, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{bindings: b, metrics: m, logger: logger.With(slog.String("component", "asset"))}
}

// Delete removes the file named by id. It returns a *NotFoundError (matching
// ErrNotFound) when no record resolves and performs no mutation in that case.
func (s *Service) Delete(ctx context.Context, id string) (*Outcome, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidID
	}
	if s.bindings.Store == nil {
		s.metrics.Deletion("", metrics.ResultConfigError)
		return nil, ErrStoreNotConfigured
	}

	res := Resolve(ctx, s.bindings.Store, id)
	if res.Err != nil {
		s.logger.Warn("metadata lookup failed", slog.String("file_id", id), slog.Any("error", res.Err))
	}
	if !res.Found {
		if res.Err != nil {
			// Absence is not established when a lookup failed.
			s.metrics.Deletion("", metrics.ResultFailed)
			return nil, fmt.Errorf("resolve %q: %w", id, res.Err)
		}
		s.metrics.Deletion("", metrics.ResultNotFound)
		s.logger.Info("file not found", slog.String("file_id", id), slog.String("last_key", res.Key))
		return nil, &NotFoundError{ID: id, LastKey: res.Key}
	}

	backend := Classify(id, res.Record)
	log := s.logger.With(
		slog.String("file_id", id),
		slog.String("storage_key", res.Key),
		slog.String("backend", backend.String()),
	)

	out, err := newExecutor(backend, s.bindings).Delete(ctx, Target{ID: id, Key: res.Key, Record: res.Record})
	if err != nil {
		result := metrics.ResultFailed
		if isConfigError(err) {
			result = metrics.ResultConfigError
		}
		s.metrics.Deletion(backend.String(), result)
		log.Error("delete failed", slog.Any("error", err))
		return nil, err
	}

	if out.TelegramDeleteAttempted {
		s.metrics.TelegramDelete(out.TelegramDeleted)
	}
	if out.Warning != "" {
		s.metrics.Deletion(backend.String(), metrics.ResultDegraded)
		log.Warn("file deleted with warning",
			slog.String("warning", out.Warning),
			slog.String("telegram_error", out.TelegramError),
		)
	} else {
		s.metrics.Deletion(backend.String(), metrics.ResultDeleted)
		log.Info("file deleted", slog.String("object_key", out.ObjectKey))
	}
	return out, nil
}

// Ping checks the metadata store.
func (s *Service) Ping(ctx context.Context) error {
	if s.bindings.Store == nil {
		return ErrStoreNotConfigured
	}
	return s.bindings.Store.Ping(ctx)
}

// IsNotFound returns true when the error indicates a file was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
