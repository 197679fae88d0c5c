package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/deppfellow/daca-chatbot/internal/errs"
	"github.com/pkg/errors"
)

var timeType = reflect.TypeOf(time.Time{})

// timeLayouts are the accepted datetime forms, tried in order. Layouts
// without an offset are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Decode builds dst from a mapping of field names to raw values.
//
// Fields are matched by their `json` name. A field is required unless its
// tag carries `omitempty`; an absent or null required field is reported as
// missing. Nested records and lists of records are decoded recursively,
// scalars are coerced with encoding/json semantics. Once decoding is done
// dst.Validate() runs, and every failure from both phases is returned as a
// single Errors value. A field that failed to decode is not reported again
// by validation.
//
// dst must be a non-nil pointer to a struct.
func Decode(raw map[string]any, dst Validatable) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validation: decode target must be a non-nil pointer to a struct, got %T", dst)
	}

	var failures Errors
	decodeStruct("", raw, rv.Elem(), &failures)

	if err := dst.Validate(); err != nil {
		var fieldErrors Errors
		if !errors.As(err, &fieldErrors) {
			return err
		}
		for _, fe := range fieldErrors {
			if !failures.covers(fe.Field) {
				failures = append(failures, fe)
			}
		}
	}

	if len(failures) > 0 {
		return failures
	}
	return nil
}

// DecodeJSON reads a JSON object from data and decodes it into dst.
// Anything other than an object is reported against the "body" field.
func DecodeJSON(data []byte, dst Validatable) error {
	raw, err := parseObject(data)
	if err != nil {
		return Errors{{Field: "body", Constraint: "json", Error: err.Error()}}
	}
	return Decode(raw, dst)
}

// ToMap returns the data representation of a record: the same mapping
// Decode accepts.
func ToMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("validation: encode %T: %w", v, err)
	}

	raw, err := parseObject(data)
	if err != nil {
		return nil, fmt.Errorf("validation: encode %T: %w", v, err)
	}
	return raw, nil
}

func parseObject(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid JSON: unexpected data after top-level value")
	}

	raw, ok := value.(map[string]any)
	if !ok {
		return nil, errors.New("must be a JSON object")
	}
	return raw, nil
}

func decodeStruct(path string, raw map[string]any, v reflect.Value, failures *Errors) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		// Fields bound from the path or query string are not part of the body.
		if field.Tag.Get("json") == "" && (field.Tag.Get("param") != "" || field.Tag.Get("query") != "") {
			continue
		}

		name, optional := jsonName(field)
		if name == "-" {
			continue
		}

		fieldPath := joinPath(path, name)
		value, present := raw[name]
		if !present || value == nil {
			if !optional {
				*failures = append(*failures, errs.FieldError{
					Field:      fieldPath,
					Constraint: "required",
					Error:      "field required",
				})
			}
			continue
		}

		decodeValue(fieldPath, value, v.Field(i), failures)
	}

	if d, ok := v.Addr().Interface().(Defaulter); ok {
		d.SetDefaults()
	}
}

func decodeValue(path string, raw any, v reflect.Value, failures *Errors) {
	if raw == nil {
		if v.Kind() != reflect.Pointer {
			*failures = append(*failures, errs.FieldError{
				Field:      path,
				Constraint: "type",
				Error:      "must not be null",
			})
		}
		return
	}

	switch {
	case v.Kind() == reflect.Pointer:
		elem := reflect.New(v.Type().Elem())
		before := len(*failures)
		decodeValue(path, raw, elem.Elem(), failures)
		if len(*failures) == before {
			v.Set(elem)
		}

	case v.Type() == timeType:
		t, ok := parseTime(raw)
		if !ok {
			*failures = append(*failures, typeFailure(path, "datetime", raw))
			return
		}
		v.Set(reflect.ValueOf(t))

	case v.Kind() == reflect.Struct:
		object, ok := raw.(map[string]any)
		if !ok {
			*failures = append(*failures, typeFailure(path, "object", raw))
			return
		}
		decodeStruct(path, object, v, failures)

	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8:
		items, ok := raw.([]any)
		if !ok {
			*failures = append(*failures, typeFailure(path, "list", raw))
			return
		}
		out := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, item := range items {
			decodeValue(fmt.Sprintf("%s[%d]", path, i), item, out.Index(i), failures)
		}
		v.Set(out)

	default:
		data, err := json.Marshal(raw)
		if err == nil {
			err = json.Unmarshal(data, v.Addr().Interface())
		}
		if err != nil {
			*failures = append(*failures, typeFailure(path, typeName(v.Type()), raw))
		}
	}
}

// parseTime reads an ISO 8601 datetime string. A missing offset means UTC.
func parseTime(raw any) (time.Time, bool) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func typeFailure(path, expected string, raw any) errs.FieldError {
	return errs.FieldError{
		Field:      path,
		Constraint: "type",
		Error:      "must be a valid " + expected,
		Value:      raw,
	}
}

func typeName(t reflect.Type) string {
	if t == timeType {
		return "datetime"
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map:
		return "object"
	}
	return t.String()
}

// jsonName returns the wire name of a field and whether it may be omitted.
func jsonName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(","+opts+",", ",omitempty,")
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
