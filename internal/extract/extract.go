// Package extract turns raw model output into validated structured values.
//
// Parse never retries, logs, or performs I/O. Callers decide whether a
// failure is fatal, retried, or shown to the user.
package extract

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// ExcerptLimit bounds the raw text carried by an Error, in runes.
const ExcerptLimit = 500

// Kind classifies an extraction failure.
type Kind int

const (
	// NoJSONFound means neither a fenced block nor a brace span parsed.
	NoJSONFound Kind = iota + 1
	// SchemaViolation means JSON was found but has the wrong shape or
	// breaks a semantic rule.
	SchemaViolation
)

func (k Kind) String() string {
	switch k {
	case NoJSONFound:
		return "no_json"
	case SchemaViolation:
		return "schema_violation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrNoJSONFound     = stderrors.New("no JSON object found in response")
	ErrSchemaViolation = stderrors.New("response does not match schema")
)

// Error is the failure returned by Parse.
type Error struct {
	Kind    Kind
	Excerpt string
	Details []string
	Cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NoJSONFound:
		return ErrNoJSONFound.Error()
	default:
		if len(e.Details) == 0 {
			return ErrSchemaViolation.Error()
		}
		return fmt.Sprintf("%s: %s", ErrSchemaViolation, strings.Join(e.Details, "; "))
	}
}

// Is matches the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNoJSONFound:
		return e.Kind == NoJSONFound
	case ErrSchemaViolation:
		return e.Kind == SchemaViolation
	}
	return false
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of an extraction failure, or 0 for other errors.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Violation builds a SchemaViolation for checks made outside Parse, such as
// cross references against data the schema cannot see.
func Violation(raw string, cause error) *Error {
	return &Error{
		Kind:    SchemaViolation,
		Excerpt: Excerpt(raw),
		Details: details(cause),
		Cause:   cause,
	}
}

// Excerpt returns at most ExcerptLimit runes from the start of raw.
func Excerpt(raw string) string {
	if utf8.RuneCountInString(raw) <= ExcerptLimit {
		return raw
	}
	return string([]rune(raw)[:ExcerptLimit])
}

var (
	fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)```")
	braceSpan  = regexp.MustCompile(`\{[\s\S]*\}`)
)

// Locate finds the JSON document embedded in raw. A fenced json block wins
// when its content parses; otherwise the span from the first '{' to the
// last '}' is tried.
func Locate(raw string) (any, bool) {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		if doc, ok := decode(m[1]); ok {
			return doc, true
		}
	}
	if span := braceSpan.FindString(raw); span != "" {
		if doc, ok := decode(span); ok {
			return doc, true
		}
	}
	return nil, false
}

func decode(text string) (any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, false
	}
	return doc, true
}

// Parse locates the JSON document in raw, checks it against T's schema,
// decodes it, applies defaults and runs T's semantic validation.
func Parse[T any, PT interface {
	*T
	schema.Structured
}](raw string) (*T, error) {
	doc, ok := Locate(raw)
	if !ok {
		return nil, &Error{Kind: NoJSONFound, Excerpt: Excerpt(raw)}
	}

	value := new(T)
	out := PT(value)

	if err := out.JSONSchema().VisitJSON(doc, openapi3.MultiErrors()); err != nil {
		return nil, Violation(raw, err)
	}

	// Re-encode the located document so decoding sees exactly what was
	// validated, not the surrounding prose.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, Violation(raw, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(out); err != nil {
		return nil, Violation(raw, err)
	}

	if d, ok := any(out).(schema.Defaulter); ok {
		d.ApplyDefaults()
	}

	if err := out.Validate(); err != nil {
		return nil, Violation(raw, err)
	}

	return value, nil
}

// details flattens validation errors into one line per problem.
func details(err error) []string {
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if stderrors.As(err, &multi) {
		var out []string
		for _, e := range multi {
			out = append(out, details(e)...)
		}
		return out
	}

	var se *openapi3.SchemaError
	if stderrors.As(err, &se) {
		path := strings.Join(se.JSONPointer(), ".")
		if path == "" {
			return []string{se.Reason}
		}
		return []string{fmt.Sprintf("%s: %s", path, se.Reason)}
	}

	var v schema.Violations
	if stderrors.As(err, &v) {
		return append([]string(nil), v...)
	}

	var ie *schema.IntegrityError
	if stderrors.As(err, &ie) {
		return append([]string(nil), ie.Problems...)
	}

	return []string{err.Error()}
}
