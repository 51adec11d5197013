package asset

import (
	"context"
	"errors"
	"strings"

	"github.com/imgbed/service/internal/metadata"
)

// Storage key prefixes written by the uploader over time.
const (
	PrefixImage    = "img:"
	PrefixVideo    = "vid:"
	PrefixAudio    = "aud:"
	PrefixDocument = "doc:"
	PrefixR2       = "r2:"
)

// probeOrder is the order candidate keys are tried in. The bare id is last.
var probeOrder = []string{PrefixImage, PrefixVideo, PrefixAudio, PrefixDocument, PrefixR2, ""}

// Resolution is the outcome of looking up a file id.
type Resolution struct {
	// Key is the storage key the record was found under, or the last key
	// probed when nothing was found.
	Key    string
	Record *metadata.Record
	Found  bool
	// Err joins lookup failures other than "not found". A resolution can be
	// Found even if an earlier candidate failed.
	Err error
}

// hasKnownPrefix reports whether id is already a typed storage key.
func hasKnownPrefix(id string) bool {
	for _, p := range probeOrder {
		if p != "" && strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// candidateKeys lists the storage keys to probe for id, in order.
func candidateKeys(id string) []string {
	if hasKnownPrefix(id) {
		return []string{id}
	}
	keys := make([]string, 0, len(probeOrder))
	for _, p := range probeOrder {
		keys = append(keys, p+id)
	}
	return keys
}

// Resolve finds the record for id, stopping at the first candidate key whose
// entry carries metadata. Entries without metadata count as missing. Resolve
// does not fail: lookup errors are collected in Resolution.Err and the next
// candidate is tried.
func Resolve(ctx context.Context, store metadata.Store, id string) Resolution {
	var (
		res  Resolution
		errs []error
	)
	for _, key := range candidateKeys(id) {
		res.Key = key
		rec, err := store.Get(ctx, key)
		if errors.Is(err, metadata.ErrNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !rec.HasMetadata() {
			continue
		}
		res.Record = rec
		res.Found = true
		break
	}
	res.Err = errors.Join(errs...)
	return res
}
