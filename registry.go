package polinjectum

import (
	"reflect"
	"sort"
	"sync"
)

// registrationKey identifies one registration: the contract type plus an
// optional qualifier tag. An empty qualifier is the unqualified entry.
type registrationKey struct {
	contract  reflect.Type
	qualifier string
}

func (key registrationKey) label() string {
	return formatLabel(key.contract, key.qualifier)
}

// registration is a single table entry. The instance field is filled
// exactly once, by the resolver, on the first successful resolution of a
// Singleton entry; it is guarded by the resolver's per-entry mutex.
type registration struct {
	producer  *producerSpec
	instance  any
	id        int
	lifecycle Lifecycle
	resolved  bool
}

func newRegistry() *registry {
	return &registry{
		entries: make(map[registrationKey]*registration),
		nextID:  1,
	}
}

// registry is the registration table. Append-only: entries are never
// replaced or removed, the whole table is dropped on Reset.
type registry struct {
	entries map[registrationKey]*registration
	mu      sync.RWMutex
	nextID  int
}

func (r *registry) add(key registrationKey, producer *producerSpec, lifecycle Lifecycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[key]; ok {
		return newRegistrationError(ErrDuplicateRegistration, producer.producerType)
	}

	r.entries[key] = &registration{
		id:        r.nextID,
		producer:  producer,
		lifecycle: lifecycle,
	}

	r.nextID++

	return nil
}

func (r *registry) lookup(key registrationKey) (*registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.entries[key]

	return rec, ok
}

// allFor returns every registration of contract across all qualifiers,
// in registration order, together with the matching qualifiers.
func (r *registry) allFor(contract reflect.Type) ([]*registration, []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]registrationKey, 0, 1)
	for key := range r.entries {
		if key.contract == contract {
			keys = append(keys, key)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		return r.entries[keys[i]].id < r.entries[keys[j]].id
	})

	records := make([]*registration, 0, len(keys))
	qualifiers := make([]string, 0, len(keys))
	for _, key := range keys {
		records = append(records, r.entries[key])
		qualifiers = append(qualifiers, key.qualifier)
	}

	return records, qualifiers
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[registrationKey]*registration)
	r.nextID = 1
}
