package metadata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const natsOpTimeout = 5 * time.Second

// natsEntry is the JSON document stored as a KV value.
type natsEntry struct {
	Value    string          `json:"value"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// NATSStore keeps records in a JetStream key-value bucket.
// Storage keys such as "img:abc" contain characters NATS does not allow in
// KV keys, so every key is stored base64url encoded.
type NATSStore struct {
	conn   *nats.Conn
	bucket jetstream.KeyValue
}

// ConnectNATS dials the server and opens (or creates) the bucket.
func ConnectNATS(ctx context.Context, url, bucket string) (*NATSStore, error) {
	conn, err := nats.Connect(url, nats.Name("imgbed-service"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	kv, err := js.KeyValue(ctx, bucket)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: bucket})
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open kv bucket %q: %w", bucket, err)
	}

	return &NATSStore{conn: conn, bucket: kv}, nil
}

// NewNATSStore wraps an already opened bucket.
func NewNATSStore(bucket jetstream.KeyValue) *NATSStore {
	return &NATSStore{bucket: bucket}
}

// Get fetches the record stored under key.
func (s *NATSStore) Get(ctx context.Context, key string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, natsOpTimeout)
	defer cancel()

	entry, err := s.bucket.Get(ctx, encodeKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}

	var doc natsEntry
	if err := json.Unmarshal(entry.Value(), &doc); err != nil {
		return nil, fmt.Errorf("kv get %q: decode entry: %w", key, err)
	}
	md, err := decodeMetadata(doc.Metadata)
	if err != nil {
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}
	return &Record{Key: key, Value: doc.Value, Metadata: md}, nil
}

// Delete removes key from the bucket.
func (s *NATSStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, natsOpTimeout)
	defer cancel()

	err := s.bucket.Delete(ctx, encodeKey(key))
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Ping checks the server connection.
func (s *NATSStore) Ping(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	if !s.conn.IsConnected() {
		return fmt.Errorf("nats: not connected (status %s)", s.conn.Status())
	}
	return nil
}

// Close drains the underlying connection.
func (s *NATSStore) Close() {
	if s.conn != nil {
		_ = s.conn.Drain()
	}
}

func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}
