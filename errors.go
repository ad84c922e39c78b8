package polinjectum

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	producerTypeStr          string = "func(D1, ...) [C|(C, error)]"
	fieldProducerTypeStr     string = "polinjectum.T[S] | polinjectum.P[S] | polinjectum.I[C, S]"
	supportedProducerFormats string = producerTypeStr + " | " + fieldProducerTypeStr + " | nil"
)

var (
	errorInterface = reflect.TypeOf((*error)(nil)).Elem()

	ErrVariadicProducer      = fmt.Errorf("variadic producer is not supported")
	ErrDuplicateRegistration = fmt.Errorf("container has already registered a producer for this key")
	ErrProducerNotAFunction  = fmt.Errorf("producer must be a function")
	ErrProducerWrongType     = fmt.Errorf("producer does not yield the contract type")
	ErrNotConstructible      = fmt.Errorf("nil producer can be used only with a struct or pointer-to-struct contract")
	ErrTaggedUnexportedField = fmt.Errorf("`inject` tag on an unexported field")
)

func newProducerUnsupportedError(producerType reflect.Type) error {
	return newRegistrationError(
		&ProducerTemplateError{
			SupportedProducerFormats: supportedProducerFormats,
		},
		producerType,
	)
}

// LifecycleUnsupportedError reports a Lifecycle value outside of
// Transient and Singleton.
type LifecycleUnsupportedError string

func (lifecycle LifecycleUnsupportedError) Error() string {
	return fmt.Sprintf("%s Lifecycle is unsupported", string(lifecycle))
}

func newRegistrationError(cause error, producerType reflect.Type) error {
	return &RegistrationError{
		cause:        cause,
		ProducerType: producerType,
	}
}

// RegistrationError reports a failed Register call.
type RegistrationError struct {
	cause        error
	ProducerType reflect.Type
}

func (err *RegistrationError) Error() string {
	return fmt.Sprintf("cannot register %s: %s", err.ProducerType, err.cause)
}

func (err *RegistrationError) Unwrap() error {
	return err.cause
}

// ProducerTemplateError reports a producer of an unsupported shape.
type ProducerTemplateError struct {
	SupportedProducerFormats string
}

func (err *ProducerTemplateError) Error() string {
	return fmt.Sprintf("only %s can be used as a producer", err.SupportedProducerFormats)
}

func newFieldError(cause error, structType reflect.Type, field string) error {
	return &FieldError{cause: cause, StructType: structType, Field: field}
}

// FieldError reports a struct field that cannot take part in field wiring.
type FieldError struct {
	cause      error
	StructType reflect.Type
	Field      string
}

func (err *FieldError) Error() string {
	return fmt.Sprintf("field %s of %s: %s", err.Field, err.StructType, err.cause)
}

func (err *FieldError) Unwrap() error {
	return err.cause
}

func newIError(cause error, i, s reflect.Type) error {
	return &IError{S: s, I: i, cause: cause}
}

// IError reports a failed polinjectum.I producer construction.
type IError struct {
	cause error

	I, S reflect.Type
}

func (err *IError) Error() string {
	return fmt.Sprintf("polinjectum.I[%s, %s] returned an error: %s", err.I, err.S, err.cause)
}

func (err *IError) Unwrap() error {
	return err.cause
}

// TError reports polinjectum.T used with a non-struct type argument.
type TError struct {
	S reflect.Type
}

func (err *TError) Error() string {
	return fmt.Sprintf("polinjectum.T can only be used with a struct, got %s", err.S)
}

// PError reports polinjectum.P used with a non-struct type argument.
type PError struct {
	S reflect.Type
}

func (err *PError) Error() string {
	return fmt.Sprintf("polinjectum.P can only be used with a struct, got %s", err.S)
}

var (
	ErrIWrongSType         = fmt.Errorf("I can be used only with S as a struct")
	ErrIWrongIType         = fmt.Errorf("I can be used only with I as an interface")
	ErrISDoesNotImplementI = fmt.Errorf("I can only be used with S if *S implements I")
)

func newResolutionError(cause error, chain []string) error {
	return &ResolutionError{cause: cause, Chain: chain}
}

// ResolutionError reports a failed resolution.
// Chain holds the path of in-progress resolutions from the root request
// to the failure, for diagnostics.
type ResolutionError struct {
	cause error
	Chain []string
}

func (err *ResolutionError) Error() string {
	if len(err.Chain) == 0 {
		return err.cause.Error()
	}

	return fmt.Sprintf("%s (resolution chain: %s)", err.cause, strings.Join(err.Chain, " -> "))
}

func (err *ResolutionError) Unwrap() error {
	return err.cause
}

func newMissingRegistrationError(label string) error {
	return &MissingRegistrationError{Label: label}
}

// MissingRegistrationError reports a (contract, qualifier) key
// without a registration.
type MissingRegistrationError struct {
	Label string
}

func (err *MissingRegistrationError) Error() string {
	return fmt.Sprintf("no registration found for %s", err.Label)
}

func newAmbiguousResolutionError(typeName string, qualifiers []string) error {
	return &AmbiguousResolutionError{TypeName: typeName, Qualifiers: qualifiers}
}

// AmbiguousResolutionError reports an unqualified resolve of a contract
// that has several qualified registrations and no unqualified one.
// Qualifiers is sorted.
type AmbiguousResolutionError struct {
	TypeName   string
	Qualifiers []string
}

func (err *AmbiguousResolutionError) Error() string {
	quoted := make([]string, len(err.Qualifiers))
	for i, q := range err.Qualifiers {
		quoted[i] = fmt.Sprintf("%q", q)
	}

	return fmt.Sprintf(
		"ambiguous resolution for %s: multiple qualified registrations exist (%s), specify a qualifier",
		err.TypeName,
		strings.Join(quoted, ", "),
	)
}

func newCircularDependencyError(label string) error {
	return &CircularDependencyError{Label: label}
}

// CircularDependencyError reports a label that recurs within the active
// resolution chain.
type CircularDependencyError struct {
	Label string
}

func (err *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency on %s", err.Label)
}

func newAutoWireError(cause error, parameter, label string) error {
	return &AutoWireError{cause: cause, Parameter: parameter, Label: label}
}

// AutoWireError names the producer parameter whose dependency failed
// to resolve.
type AutoWireError struct {
	cause     error
	Parameter string
	Label     string
}

func (err *AutoWireError) Error() string {
	return fmt.Sprintf("cannot auto-wire parameter %q of type %s: %s", err.Parameter, err.Label, err.cause)
}

func (err *AutoWireError) Unwrap() error {
	return err.cause
}

func newConstructionError(cause error, lifecycle Lifecycle, label string) error {
	return &ConstructionError{
		cause:     cause,
		Lifecycle: lifecycle,
		Label:     label,
	}
}

// ConstructionError reports a producer invocation that failed after all
// dependencies resolved. Distinct from ResolutionError: the registration
// was found, the producer itself misbehaved.
type ConstructionError struct {
	cause     error
	Label     string
	Lifecycle Lifecycle
}

func (err *ConstructionError) Error() string {
	return fmt.Sprintf("cannot build %s %s: %s", err.Lifecycle, err.Label, err.cause)
}

func (err *ConstructionError) Unwrap() error {
	return err.cause
}

func newProducerError(cause error) error {
	return &ProducerError{
		cause: cause,
	}
}

// ProducerError wraps an error returned, or a panic raised, by a producer.
type ProducerError struct {
	cause error
}

func (err *ProducerError) Error() string {
	return fmt.Sprintf("producer returned an error: %s", err.cause)
}

func (err *ProducerError) Unwrap() error {
	return err.cause
}

func newUnexpectedResultError(values []reflect.Value) error {
	return &UnexpectedResultError{
		Result: values,
	}
}

// UnexpectedResultError reports a producer call yielding a result of
// unexpected arity.
type UnexpectedResultError struct {
	Result []reflect.Value
}

func (err *UnexpectedResultError) Error() string {
	return fmt.Sprintf("unexpected result: %#v", err.Result)
}
