package polinjectum

import (
	"reflect"
	"sync"
	"sync/atomic"
)

var _ Container = new(container)

type container struct {
	registry *registry
	sMu      sync.Map
}

func newContainer() *container {
	return &container{
		registry: newRegistry(),
	}
}

var (
	defaultInstance atomic.Pointer[container]
	defaultMu       sync.Mutex
)

// Default returns the process-wide container, creating it on first
// access. Creation is double-checked under a lock so concurrent first
// use yields exactly one instance.
func Default() Container {
	if c := defaultInstance.Load(); c != nil {
		return c
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if c := defaultInstance.Load(); c != nil {
		return c
	}

	c := newContainer()
	defaultInstance.Store(c)

	return c
}

// Reset clears every registration and invalidates the process-wide
// container; the next Default call builds a fresh, empty one.
// Intended for use in tests to ensure a clean state between test cases.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if c := defaultInstance.Load(); c != nil {
		c.registry.clear()
	}

	defaultInstance.Store(nil)
}

func (c *container) sealed() {}

func (c *container) Register(contract reflect.Type, qualifier string, producer any, lifecycle Lifecycle) error {
	if lifecycle != Singleton && lifecycle != Transient {
		return LifecycleUnsupportedError(lifecycle.String())
	}

	p, err := normalizeProducer(contract, producer)
	if err != nil {
		return err
	}

	key := registrationKey{contract: contract, qualifier: qualifier}

	for _, dep := range p.dependencies {
		if dep.contract == contract && dep.qualifier == qualifier {
			logger().Warn(
				"producer depends on its own contract and can never resolve",
				"contract", key.label(),
			)
		}
	}

	return c.registry.add(key, p, lifecycle)
}

func (c *container) Resolve(contract reflect.Type, qualifier string) (any, error) {
	return c.resolve(contract, qualifier, nil)
}

func (c *container) ResolveAll(contract reflect.Type) ([]any, error) {
	records, qualifiers := c.registry.allFor(contract)

	instances := make([]any, 0, len(records))
	for i := range records {
		instance, err := c.resolve(contract, qualifiers[i], nil)
		if err != nil {
			return nil, err
		}

		instances = append(instances, instance)
	}

	return instances, nil
}
