package polinjectum

import (
	"fmt"
	"reflect"
)

// injectTag carries the qualifier for a wired struct field;
// the value "-" opts the field out of wiring.
const injectTag = "inject"

// dependencySpec describes one declared dependency of a producer:
// a parameter of a constructor function or an exported struct field.
type dependencySpec struct {
	name      string
	contract  reflect.Type
	qualifier string
}

func (spec dependencySpec) label() string {
	return formatLabel(spec.contract, spec.qualifier)
}

func formatLabel(contract reflect.Type, qualifier string) string {
	if qualifier == "" {
		return contract.String()
	}

	return fmt.Sprintf("%s[%s]", contract, qualifier)
}

// funcDependencies lists the dependencies declared by a constructor
// function type, in parameter order. Function parameters cannot carry
// qualifier tags, so every dependency is unqualified.
func funcDependencies(t reflect.Type) []dependencySpec {
	numIn := t.NumIn()
	specs := make([]dependencySpec, 0, numIn)

	for i := 0; i < numIn; i++ {
		specs = append(specs, dependencySpec{
			name:     fmt.Sprintf("arg%d", i),
			contract: t.In(i),
		})
	}

	return specs
}

// structDependencies lists the wireable fields of a struct type along
// with the field indices to set. Unexported fields and fields tagged
// `inject:"-"` are left to their zero values; an `inject` tag on an
// unexported field is rejected as a malformed producer.
func structDependencies(t reflect.Type) ([]dependencySpec, []int, error) {
	specs := make([]dependencySpec, 0, 1)
	fields := make([]int, 0, 1)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, tagged := field.Tag.Lookup(injectTag)

		if !field.IsExported() {
			if tagged {
				return nil, nil, newFieldError(ErrTaggedUnexportedField, t, field.Name)
			}

			continue
		}

		if tag == "-" {
			continue
		}

		specs = append(specs, dependencySpec{
			name:      field.Name,
			contract:  field.Type,
			qualifier: tag,
		})
		fields = append(fields, i)
	}

	return specs, fields, nil
}
