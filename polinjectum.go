package polinjectum

// This package provides a qualifier-aware dependency injection container.
// Producers are registered per (contract type, qualifier) key and resolved
// recursively: every declared dependency of a producer is itself resolved
// from the container before the producer is invoked.
// `Singleton` caching was the main reason to create this package,
// qualifiers and auto-wiring exist to keep registrations declarative.

import (
	"fmt"
	"reflect"
)

// Lifecycle controls how instances produced for a registration are cached.
type Lifecycle int

const (
	// For a Transient registration a new instance is produced on every resolution.
	Transient Lifecycle = iota
	// For a Singleton registration the first produced instance is cached
	// and returned on every subsequent resolution until Reset.
	Singleton
)

func (l Lifecycle) String() string {
	switch l {
	case Transient:
		return "Transient"
	case Singleton:
		return "Singleton"
	default:
		return fmt.Sprintf("Lifecycle(%d)", int(l))
	}
}

// Container is the resolution engine contract.
// This interface is sealed; the process-wide instance is obtained with Default.
type Container interface {
	sealed()
	// Registers producer for (contract, qualifier) with the given lifecycle.
	// An empty qualifier means the unqualified registration.
	// A nil producer constructs the contract type itself.
	Register(contract reflect.Type, qualifier string, producer any, lifecycle Lifecycle) error
	// Resolves an instance for (contract, qualifier).
	// An empty qualifier falls back to the sole qualified registration
	// when exactly one exists.
	Resolve(contract reflect.Type, qualifier string) (any, error)
	// Resolves every registration of contract across all qualifiers,
	// in registration order. Unknown contracts yield an empty slice.
	ResolveAll(contract reflect.Type) ([]any, error)
}

type registerConfig struct {
	qualifier string
}

// RegisterOption adjusts a single Register call.
type RegisterOption func(*registerConfig)

// WithQualifier registers the producer under a qualifier tag so that
// several producers can serve the same contract type.
func WithQualifier(qualifier string) RegisterOption {
	return func(conf *registerConfig) { conf.qualifier = qualifier }
}

func typeOf[C any]() reflect.Type {
	return reflect.TypeOf(new(C)).Elem()
}

// Register adds producer for contract C to the process-wide container.
func Register[C any](lifecycle Lifecycle, producer any, opts ...RegisterOption) error {
	conf := registerConfig{}

	for _, opt := range opts {
		opt(&conf)
	}

	return Default().Register(typeOf[C](), conf.qualifier, producer, lifecycle)
}

// Resolve returns an instance of contract C from the process-wide container.
// At most one qualifier can be passed; none selects the unqualified registration.
func Resolve[C any](qualifier ...string) (C, error) {
	var q string
	if len(qualifier) > 0 {
		q = qualifier[0]
	}

	value, err := Default().Resolve(typeOf[C](), q)
	if err != nil {
		var zero C
		return zero, err
	}

	service, ok := value.(C)
	if !ok {
		var zero C
		return zero, fmt.Errorf("%w: resolved %T for %s", ErrProducerWrongType, value, formatLabel(typeOf[C](), q))
	}

	return service, nil
}

// MustResolve is Resolve that panics on error.
func MustResolve[C any](qualifier ...string) C {
	service, err := Resolve[C](qualifier...)
	if err != nil {
		panic(err)
	}

	return service
}

// ResolveAll returns instances for every registration of contract C,
// in registration order.
func ResolveAll[C any]() ([]C, error) {
	values, err := Default().ResolveAll(typeOf[C]())
	if err != nil {
		return nil, err
	}

	services := make([]C, 0, len(values))
	for _, value := range values {
		service, ok := value.(C)
		if !ok {
			return nil, fmt.Errorf("%w: resolved %T for %s", ErrProducerWrongType, value, typeOf[C]())
		}

		services = append(services, service)
	}

	return services, nil
}
