package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrMalformedBody is returned when the body is not parseable as JSON at all.
var ErrMalformedBody = errors.New("malformed request body")

// FieldError describes one violated constraint. Path uses the JSON field names.
type FieldError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Result is the outcome of parsing a body against a schema: a valid Value,
// a list of field Errors, or Err when the body could not be read as JSON.
type Result[T any] struct {
	Value  T
	Errors []FieldError
	Err    error
}

func (r Result[T]) OK() bool {
	return r.Err == nil && len(r.Errors) == 0
}

// Validator checks struct-tag schemas.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, Decimal{})
	return &Validator{validate: v}
}

// decimalValue lets numeric tags such as gte=0 apply to decimal fields.
func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d.InexactFloat64()
	case Decimal:
		return d.InexactFloat64()
	}
	return nil
}

// Parse decodes body into T and validates it. Fields holding the wrong JSON type are
// reported alongside the constraint errors of the remaining fields.
func Parse[T any](v *Validator, body io.Reader) Result[T] {
	if body == nil {
		return Result[T]{Err: ErrMalformedBody}
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return Result[T]{Err: fmt.Errorf("%w: %v", ErrMalformedBody, err)}
	}

	value, errs, err := decode[T](raw)
	if err != nil {
		return Result[T]{Err: fmt.Errorf("%w: %v", ErrMalformedBody, err)}
	}

	reported := make(map[string]bool, len(errs))
	for _, fe := range errs {
		reported[strings.Join(fe.Path, ".")] = true
	}
	for _, fe := range v.Check(value) {
		if !reported[strings.Join(fe.Path, ".")] {
			errs = append(errs, fe)
		}
	}

	if len(errs) > 0 {
		return Result[T]{Value: value, Errors: errs}
	}
	return Result[T]{Value: value}
}

// decode unmarshals raw into T. On a type mismatch the offending top-level field is
// recorded, dropped from the body and decoding starts over.
func decode[T any](raw []byte) (T, []FieldError, error) {
	var (
		fields map[string]json.RawMessage
		errs   []FieldError
	)
	for {
		var value T
		err := decodeOne(raw, &value)
		if err == nil {
			return value, errs, nil
		}

		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return value, nil, err
		}
		errs = append(errs, typeError(typeErr))

		if fields == nil {
			if err := json.Unmarshal(raw, &fields); err != nil {
				return value, nil, err
			}
		}
		top := strings.SplitN(typeErr.Field, ".", 2)[0]
		if _, ok := fields[top]; !ok {
			return value, errs, nil
		}
		delete(fields, top)
		if raw, err = json.Marshal(fields); err != nil {
			return value, nil, err
		}
	}
}

var errTrailingData = errors.New("unexpected data after JSON value")

func decodeOne(raw []byte, value interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(value); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// Check validates an already decoded struct and returns one FieldError per violated field.
func (v *Validator) Check(value interface{}) []FieldError {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Path: []string{}, Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Path:    fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

func typeError(err *json.UnmarshalTypeError) FieldError {
	return FieldError{
		Path:    fieldPath("_." + err.Field),
		Message: fmt.Sprintf("Expected %s, received %s", jsonKind(err.Type), err.Value),
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// fieldPath turns "Schema.images[1].url" into ["images", "1", "url"], dropping the schema type name.
func fieldPath(namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 0 {
		parts = parts[1:]
	}

	path := make([]string, 0, len(parts))
	for _, part := range parts {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				path = append(path, part)
				break
			}
			if open > 0 {
				path = append(path, part[:open])
			}
			end := strings.IndexByte(part, ']')
			if end < open {
				path = append(path, part[open:])
				break
			}
			path = append(path, part[open+1:end])
			part = part[end+1:]
		}
	}
	return path
}

// label turns "supplier_email" into "Supplier email".
func label(field string) string {
	words := strings.ReplaceAll(field, "_", " ")
	if words == "" {
		return words
	}
	return strings.ToUpper(words[:1]) + words[1:]
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return "Invalid email address"
	case "url":
		return "Invalid url"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must contain at least %s character(s)", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must contain at most %s character(s)", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}
