// Package schema defines the structured responses the models are asked to
// produce. Each type carries an OpenAPI schema for structural checks and a
// Validate method for the rules a schema cannot express.
package schema

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Structured is implemented by every response type the extraction engine
// can produce.
type Structured interface {
	// JSONSchema describes the required shape, ranges and enums.
	JSONSchema() *openapi3.Schema
	// Validate checks cross-field rules after decoding.
	Validate() error
}

// Defaulter is implemented by types that fill omitted fields after decoding.
type Defaulter interface {
	ApplyDefaults()
}

// Violations collects semantic rule failures.
type Violations []string

func (v Violations) Error() string {
	return strings.Join(v, "; ")
}

func (v *Violations) addf(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v Violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func object(required []string, props map[string]*openapi3.Schema) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for name, prop := range props {
		s.WithProperty(name, prop)
	}
	s.Required = required
	return s
}

func str() *openapi3.Schema {
	return openapi3.NewStringSchema()
}

func strList() *openapi3.Schema {
	return openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
}

func boundedInt(min, max float64) *openapi3.Schema {
	return openapi3.NewIntegerSchema().WithMin(min).WithMax(max)
}

func enum(values ...string) *openapi3.Schema {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return openapi3.NewStringSchema().WithEnum(vals...)
}

func listOf(item *openapi3.Schema) *openapi3.Schema {
	return openapi3.NewArraySchema().WithItems(item)
}

func nullable(s *openapi3.Schema) *openapi3.Schema {
	s.Nullable = true
	return s
}
