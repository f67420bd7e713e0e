package permission

import (
	"errors"
	"sync"
)

var (
	// ErrRegistryFrozen is returned by Register after Freeze.
	ErrRegistryFrozen = errors.New("registry frozen")
	// ErrPermissionLimit is returned when a registry runs out of bits.
	ErrPermissionLimit = errors.New("permission limit exceeded")
)

// Registry maps "resource:action" permission names to bit positions within
// a 64- or 128-bit mask.
type Registry struct {
	maxBits int

	mu        sync.RWMutex
	nameToBit map[string]int
	bitToName map[int]string
	frozen    bool
}

// NewRegistry creates a [Registry]. maxBits selects the mask width (64/128).
func NewRegistry(maxBits int) (*Registry, error) {
	if maxBits != 64 && maxBits != 128 {
		return nil, errors.New("invalid maxBits")
	}

	return &Registry{
		maxBits:   maxBits,
		nameToBit: make(map[string]int),
		bitToName: make(map[int]string),
	}, nil
}

// PermissionName joins a resource and an action into a registry name.
func PermissionName(resource, action string) string {
	return resource + ":" + action
}

// Register assigns the next available bit to the named permission and
// returns it. Registering an existing name returns its current bit.
func (r *Registry) Register(name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return -1, ErrRegistryFrozen
	}
	if name == "" {
		return -1, errors.New("permission name cannot be empty")
	}
	if bit, exists := r.nameToBit[name]; exists {
		return bit, nil
	}

	nextBit := len(r.nameToBit)
	if nextBit >= r.maxBits {
		return -1, ErrPermissionLimit
	}

	r.nameToBit[name] = nextBit
	r.bitToName[nextBit] = name

	return nextBit, nil
}

// Bit returns the bit index for the named permission, or false if not registered.
func (r *Registry) Bit(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bit, ok := r.nameToBit[name]
	return bit, ok
}

// Name returns the permission name for the given bit index, or false if unassigned.
func (r *Registry) Name(bit int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.bitToName[bit]
	return name, ok
}

// Freeze prevents further registrations.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Count returns the number of registered permissions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nameToBit)
}

// MaxBits returns the mask width chosen at construction.
func (r *Registry) MaxBits() int {
	return r.maxBits
}
