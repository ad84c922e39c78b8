package polinjectum

import "reflect"

// fieldProducer builds an instance by setting wired struct fields from
// already-resolved dependency values.
type fieldProducer struct {
	Type         reflect.Type
	Dependencies []dependencySpec
	NewInstance  func(values ...any) (any, error)
}

// T produces an S struct instance with exported fields wired from
// registrations. The `inject` tag selects a qualified registration.
func T[S any]() (fieldProducer, error) {
	t := reflect.TypeOf(new(S)).Elem()

	if t.Kind() != reflect.Struct {
		return fieldProducer{}, &TError{S: t}
	}

	dependencies, fields, err := structDependencies(t)
	if err != nil {
		return fieldProducer{}, err
	}

	return fieldProducer{
		Type:         t,
		Dependencies: dependencies,
		NewInstance:  getValueInstance[S](fields),
	}, nil
}

// P produces a *S instance with exported fields wired from registrations.
func P[S any]() (fieldProducer, error) {
	t := reflect.TypeOf(new(S)).Elem()

	if t.Kind() != reflect.Struct {
		return fieldProducer{}, &PError{S: t}
	}

	dependencies, fields, err := structDependencies(t)
	if err != nil {
		return fieldProducer{}, err
	}

	return fieldProducer{
		Type:         reflect.TypeOf(new(S)),
		Dependencies: dependencies,
		NewInstance:  getPointerInstance[S](fields),
	}, nil
}

// I produces an I interface value implemented by *S, with the exported
// fields of S wired from registrations.
func I[I, S any]() (fieldProducer, error) {
	p := reflect.TypeOf(new(S))
	t := p.Elem()
	i := reflect.TypeOf(new(I)).Elem()

	if t.Kind() != reflect.Struct {
		return fieldProducer{}, newIError(ErrIWrongSType, i, t)
	}

	if i.Kind() != reflect.Interface {
		return fieldProducer{}, newIError(ErrIWrongIType, i, t)
	}

	if !p.Implements(i) {
		return fieldProducer{}, newIError(ErrISDoesNotImplementI, i, t)
	}

	dependencies, fields, err := structDependencies(t)
	if err != nil {
		return fieldProducer{}, newIError(err, i, t)
	}

	return fieldProducer{
		Type:         i,
		Dependencies: dependencies,
		NewInstance:  getPointerInstance[S](fields),
	}, nil
}

func getValueInstance[S any](fields []int) func(...any) (any, error) {
	return func(values ...any) (any, error) {
		p := reflect.ValueOf(new(S)).Elem()

		for i, v := range values {
			p.Field(fields[i]).Set(reflect.ValueOf(v))
		}

		return p.Interface(), nil
	}
}

func getPointerInstance[S any](fields []int) func(...any) (any, error) {
	return func(values ...any) (any, error) {
		p := reflect.ValueOf(new(S)).Elem()

		for i, v := range values {
			p.Field(fields[i]).Set(reflect.ValueOf(v))
		}

		return p.Addr().Interface(), nil
	}
}

// producerSpec is a registered producer normalized for the resolver:
// the declared dependency list plus an invoker over resolved values.
type producerSpec struct {
	newInstance  func(values []any) (any, error)
	producerType reflect.Type
	dependencies []dependencySpec
}

// normalizeProducer validates producer for contract and reduces it to a
// producerSpec. A nil producer constructs the contract type itself.
func normalizeProducer(contract reflect.Type, producer any) (*producerSpec, error) {
	if producer == nil {
		return contractProducer(contract)
	}

	if construct, ok := producer.(func() (fieldProducer, error)); ok {
		filler, err := construct()
		if err != nil {
			return nil, newRegistrationError(err, reflect.TypeOf(producer))
		}

		if !filler.Type.AssignableTo(contract) {
			return nil, newRegistrationError(ErrProducerWrongType, filler.Type)
		}

		return &producerSpec{
			newInstance:  func(values []any) (any, error) { return filler.NewInstance(values...) },
			producerType: filler.Type,
			dependencies: filler.Dependencies,
		}, nil
	}

	t := reflect.TypeOf(producer)

	if t.Kind() != reflect.Func {
		return nil, newRegistrationError(ErrProducerNotAFunction, t)
	}

	if t.IsVariadic() {
		return nil, newRegistrationError(ErrVariadicProducer, t)
	}

	hasError := false

	switch t.NumOut() {
	case 1:
		if out := t.Out(0); out.Implements(errorInterface) {
			return nil, newProducerUnsupportedError(t)
		}
	case 2:
		hasError = true

		if errType := t.Out(1); !errType.Implements(errorInterface) {
			return nil, newProducerUnsupportedError(t)
		}
	default:
		return nil, newProducerUnsupportedError(t)
	}

	if !t.Out(0).AssignableTo(contract) {
		return nil, newRegistrationError(ErrProducerWrongType, t)
	}

	fn := reflect.ValueOf(producer)

	return &producerSpec{
		newInstance:  callProducerFunc(fn, hasError),
		producerType: t,
		dependencies: funcDependencies(t),
	}, nil
}

// contractProducer synthesizes a field producer from the contract type
// itself: struct contracts are built by value, pointer-to-struct
// contracts by pointer.
func contractProducer(contract reflect.Type) (*producerSpec, error) {
	t := contract
	byPointer := false

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		byPointer = true
	}

	if t.Kind() != reflect.Struct {
		return nil, newRegistrationError(ErrNotConstructible, contract)
	}

	dependencies, fields, err := structDependencies(t)
	if err != nil {
		return nil, newRegistrationError(err, contract)
	}

	newInstance := func(values []any) (any, error) {
		p := reflect.New(t).Elem()

		for i, v := range values {
			p.Field(fields[i]).Set(reflect.ValueOf(v))
		}

		if byPointer {
			return p.Addr().Interface(), nil
		}

		return p.Interface(), nil
	}

	return &producerSpec{
		newInstance:  newInstance,
		producerType: contract,
		dependencies: dependencies,
	}, nil
}

func callProducerFunc(fn reflect.Value, hasError bool) func(values []any) (any, error) {
	return func(values []any) (any, error) {
		args := make([]reflect.Value, 0, len(values))
		for _, value := range values {
			args = append(args, reflect.ValueOf(value))
		}

		results := fn.Call(args)

		if hasError {
			if len(results) != 2 {
				return nil, newUnexpectedResultError(results)
			}

			if err, ok := results[1].Interface().(error); ok && err != nil {
				return nil, err
			}

			return results[0].Interface(), nil
		}

		if len(results) != 1 {
			return nil, newUnexpectedResultError(results)
		}

		return results[0].Interface(), nil
	}
}
