package polinjectum

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// resolve turns a (contract, qualifier) request into an instance.
// chain is the path of in-progress resolutions from the root request to
// this one; a label recurring within it is a cycle. The chain models a
// path, not a visited set, so a dependency shared by two branches of
// the graph resolves in each branch without a false cycle.
func (c *container) resolve(contract reflect.Type, qualifier string, chain []string) (any, error) {
	label := formatLabel(contract, qualifier)

	if slices.Contains(chain, label) {
		return nil, newResolutionError(
			newCircularDependencyError(label),
			append(slices.Clone(chain), label),
		)
	}

	key := registrationKey{contract: contract, qualifier: qualifier}
	rec, ok := c.registry.lookup(key)

	if !ok && qualifier == "" {
		records, qualifiers := c.registry.allFor(contract)

		switch {
		case len(records) == 1:
			// Sole qualified registration serves the unqualified request.
			return c.resolve(contract, qualifiers[0], chain)
		case len(records) > 1:
			sorted := slices.Clone(qualifiers)
			slices.Sort(sorted)

			return nil, newResolutionError(
				newAmbiguousResolutionError(contract.String(), sorted),
				append(slices.Clone(chain), label),
			)
		}
	}

	if !ok {
		return nil, newResolutionError(
			newMissingRegistrationError(label),
			append(slices.Clone(chain), label),
		)
	}

	switch rec.lifecycle {
	case Singleton:
		return c.resolveSingleton(rec, label, chain)
	case Transient:
		return c.construct(rec, label, append(slices.Clone(chain), label))
	default:
		panic(fmt.Errorf(
			"broken registration %s: %w",
			label,
			LifecycleUnsupportedError(rec.lifecycle.String())),
		)
	}
}

// resolveSingleton guarantees at most one producer invocation per
// registration for the container's lifetime: the cache check and fill
// run under a per-registration mutex.
func (c *container) resolveSingleton(rec *registration, label string, chain []string) (any, error) {
	mu, _ := c.sMu.LoadOrStore(rec.id, new(sync.Mutex))

	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	if rec.resolved {
		return rec.instance, nil
	}

	instance, err := c.construct(rec, label, append(slices.Clone(chain), label))
	if err != nil {
		return nil, err
	}

	rec.instance = instance
	rec.resolved = true

	return instance, nil
}

// construct auto-wires and invokes the registration's producer. chain
// already ends with the registration's own label.
func (c *container) construct(rec *registration, label string, chain []string) (instance any, err error) {
	defer func() {
		if rp := recover(); rp != nil {
			err = newConstructionError(
				newProducerError(fmt.Errorf("recovered from panic: %v", rp)),
				rec.lifecycle,
				label,
			)
		}
	}()

	p := rec.producer
	values := make([]any, 0, len(p.dependencies))

	for _, dep := range p.dependencies {
		value, err := c.resolve(dep.contract, dep.qualifier, chain)
		if err != nil {
			return nil, wrapAutoWireFailure(err, dep)
		}

		values = append(values, value)
	}

	instance, err = p.newInstance(values)
	if err != nil {
		return nil, newConstructionError(producerFailure(err), rec.lifecycle, label)
	}

	return instance, nil
}

// wrapAutoWireFailure names the parameter whose dependency failed while
// keeping the innermost resolution chain. Construction failures pass
// through untouched; they already name the offending producer.
func wrapAutoWireFailure(err error, dep dependencySpec) error {
	re := new(ResolutionError)
	if !errors.As(err, &re) {
		return err
	}

	return newResolutionError(
		newAutoWireError(re.cause, dep.name, dep.label()),
		re.Chain,
	)
}

func producerFailure(err error) error {
	unexpected := new(UnexpectedResultError)
	if errors.As(err, &unexpected) {
		return err
	}

	return newProducerError(err)
}
