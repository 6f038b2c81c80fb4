package gemini

import (
	"context"
	"sync/atomic"

	"codelearn/internal/metrics"
)

// Operation performs one outbound request with the given credential.
type Operation func(ctx context.Context, credential string) error

// Rotator holds an ordered list of provider credentials and a cursor into
// it. The cursor persists across calls so a later call starts from whatever
// credential last worked, avoiding known-bad keys. It is shared by all
// requests in the process; concurrent advances are harmless (worst case a
// request starts on a stale credential and rotates once more), so the
// cursor is a plain atomic rather than a lock.
type Rotator struct {
	credentials []string
	cursor      atomic.Int64
}

// NewRotator builds a rotator from the configured credentials. Blank
// entries are dropped.
func NewRotator(credentials []string) *Rotator {
	kept := make([]string, 0, len(credentials))
	for _, c := range credentials {
		if c != "" {
			kept = append(kept, c)
		}
	}
	return &Rotator{credentials: kept}
}

// Len returns the number of usable credentials.
func (r *Rotator) Len() int {
	return len(r.credentials)
}

// Cursor returns the current cursor index.
func (r *Rotator) Cursor() int {
	return int(r.cursor.Load())
}

// Do invokes op with the credential at the cursor. On a rotatable failure
// (HTTP 429 or 401) it advances the cursor and retries with the next
// credential; any other failure is returned unchanged without rotating.
// When every credential has rotatable-failed, the cursor resets to the
// first credential and an ExhaustedError wrapping the last failure is
// returned.
func (r *Rotator) Do(ctx context.Context, op Operation) error {
	n := len(r.credentials)
	if n == 0 {
		return ErrNoCredentials
	}

	var lastErr error
	for attempt := 0; attempt < n; attempt++ {
		idx := int(r.cursor.Load()) % n
		err := op(ctx, r.credentials[idx])
		if err == nil {
			return nil
		}
		if !isRotatable(err) {
			return err
		}
		lastErr = err
		r.cursor.Store(int64((idx + 1) % n))
		metrics.RecordCredentialRotation()
	}

	r.cursor.Store(0)
	return &ExhaustedError{Last: lastErr}
}
