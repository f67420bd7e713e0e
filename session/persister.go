package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/infinitysurge/pentaauth/storage"
	"go.uber.org/zap"
)

// DefaultKey is the storage key holding the last-known principal.
const DefaultKey = "user"

// ErrRecordCorrupt reports that a stored record could not be parsed. By the
// time it is returned the record has already been removed.
var ErrRecordCorrupt = errors.New("persisted session record corrupt")

// Persister saves, loads, and clears the last-known principal. Backend
// failures never reach the caller: an unreachable backend behaves as empty.
type Persister struct {
	backend storage.Storage
	key     string
	logger  *zap.Logger
}

// NewPersister binds a Persister to backend under key. A nil backend
// behaves like storage.Noop; a nil logger discards output.
func NewPersister(backend storage.Storage, key string, logger *zap.Logger) *Persister {
	if backend == nil {
		backend = storage.Noop{}
	}
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Persister{backend: backend, key: key, logger: logger}
}

// Save writes p.
func (p *Persister) Save(ctx context.Context, principal Principal) {
	data, err := EncodeRecord(principal)
	if err != nil {
		p.logger.Warn("session record not saved", zap.String("email", principal.Email), zap.Error(err))
		return
	}
	if err := p.backend.Set(ctx, p.key, data); err != nil {
		p.logBackendError("save", err)
	}
}

// Load returns the stored principal, or nil when none is stored or the
// backend is unreachable. A corrupt record is deleted and reported as
// [ErrRecordCorrupt]; the following Load returns nil, nil.
func (p *Persister) Load(ctx context.Context) (*Principal, error) {
	data, err := p.backend.Get(ctx, p.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logBackendError("load", err)
		}
		return nil, nil
	}

	principal, err := DecodeRecord(data)
	if err != nil {
		p.logger.Warn("discarding corrupt session record", zap.String("key", p.key), zap.Error(err))
		p.Clear(ctx)
		return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
	}
	return &principal, nil
}

// Clear removes the stored record.
func (p *Persister) Clear(ctx context.Context) {
	if err := p.backend.Delete(ctx, p.key); err != nil {
		p.logBackendError("clear", err)
	}
}

func (p *Persister) logBackendError(op string, err error) {
	if errors.Is(err, storage.ErrUnavailable) {
		p.logger.Debug("session storage unavailable", zap.String("op", op), zap.Error(err))
		return
	}
	p.logger.Warn("session storage error", zap.String("op", op), zap.Error(err))
}
