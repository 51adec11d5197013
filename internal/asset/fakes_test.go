package asset

import (
	"context"
	"errors"

	"github.com/imgbed/service/internal/metadata"
)

// opLog records collaborator calls across fakes so tests can assert ordering.
type opLog struct {
	ops []string
}

func (l *opLog) add(op string) { l.ops = append(l.ops, op) }

type fakeStore struct {
	log       *opLog
	records   map[string]*metadata.Record
	getErrs   map[string]error
	deleteErr error
	gets      []string
	deletes   []string
}

func newFakeStore(log *opLog, records ...*metadata.Record) *fakeStore {
	s := &fakeStore{log: log, records: map[string]*metadata.Record{}, getErrs: map[string]error{}}
	for _, r := range records {
		s.records[r.Key] = r
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, key string) (*metadata.Record, error) {
	s.gets = append(s.gets, key)
	if err, ok := s.getErrs[key]; ok {
		return nil, err
	}
	rec, ok := s.records[key]
	if !ok {
		return nil, metadata.ErrNotFound
	}
	return rec, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	if s.log != nil {
		s.log.add("metadata.delete:" + key)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.records, key)
	return nil
}

func (s *fakeStore) Ping(context.Context) error { return nil }

type fakeObjects struct {
	log      *opLog
	err      error
	deleted  []string
	onDelete func()
}

func (o *fakeObjects) Delete(_ context.Context, key string) error {
	if o.log != nil {
		o.log.add("object.delete:" + key)
	}
	if o.err != nil {
		return o.err
	}
	o.deleted = append(o.deleted, key)
	if o.onDelete != nil {
		o.onDelete()
	}
	return nil
}

type fakeMessages struct {
	log   *opLog
	acked bool
	err   error
	panic bool
	calls []int
	chats []string
}

func (m *fakeMessages) DeleteMessage(_ context.Context, chatID string, messageID int) (bool, error) {
	m.calls = append(m.calls, messageID)
	m.chats = append(m.chats, chatID)
	if m.log != nil {
		m.log.add("telegram.delete")
	}
	if m.panic {
		panic("connection exploded")
	}
	return m.acked, m.err
}

var errNetwork = errors.New("dial tcp: network is unreachable")

func r2Record(key, r2Key string) *metadata.Record {
	return &metadata.Record{Key: key, Metadata: &metadata.Metadata{StorageType: metadata.StorageR2, R2Key: r2Key}}
}

func telegramRecord(key string, messageID int) *metadata.Record {
	return &metadata.Record{Key: key, Metadata: &metadata.Metadata{
		StorageType:       metadata.StorageTelegram,
		TelegramMessageID: metadata.MessageID(messageID),
	}}
}
