/*
This package provides a small dependency injection container with
qualifier-aware registrations and recursive auto-wiring.
Producers are registered against a contract type (optionally under a
qualifier tag), and resolution builds instances on demand, supplying
each producer's own dependencies from the container.

To install polinjectum:

	go get -u github.com/orlyeac/polinjectum

How to use:

	type NameService interface {
		Name() string
	}

	type Greeter struct {
		Names NameService
	}

	func (g *Greeter) Greet() string {
		return "Hello " + g.Names.Name()
	}

	err := polinjectum.Register[NameService](polinjectum.Singleton, func() NameService {
		return nameProvider("Bob")
	})
	if err != nil {
		// handle error
	}

	err = polinjectum.Register[*Greeter](polinjectum.Transient, func(ns NameService) *Greeter {
		return &Greeter{Names: ns}
	})
	if err != nil {
		// handle error
	}

	greeter, err := polinjectum.Resolve[*Greeter]()
	if err != nil {
		// handle error
	}

	// use greeter

Multiple producers of the same contract are disambiguated with qualifiers:

	_ = polinjectum.Register[Cache](polinjectum.Singleton, newMemoryCache)
	_ = polinjectum.Register[Cache](polinjectum.Singleton, newRedisCache,
		polinjectum.WithQualifier("redis"))

	cache, err := polinjectum.Resolve[Cache]("redis")

Functions:
  - polinjectum.Default
  - polinjectum.Register
  - polinjectum.Resolve
  - polinjectum.MustResolve
  - polinjectum.ResolveAll
  - polinjectum.Reset
  - polinjectum.SetLogger

Lifecycle constants:

	polinjectum.Singleton
	polinjectum.Transient

Producer forms that can be registered for a contract C:
  - func(D1, D2, ...) [C|(C, error)] - dependencies taken from the parameter list
  - polinjectum.T[S] - S struct instance with exported fields wired from registrations
  - polinjectum.P[S] - *S instance with exported fields wired from registrations
  - polinjectum.I[C, S] - C interface implemented by *S with exported fields wired
  - nil - the contract type itself is constructed (struct or pointer to struct)

Field producers read the `inject` struct tag: `inject:"name"` selects the
registration qualified with "name", `inject:"-"` leaves the field zero.
*/
package polinjectum
