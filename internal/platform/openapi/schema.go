package openapi

import (
	"path"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
)

// schemaSet collects component schemas derived from Go types by their json
// and validate tags.
type schemaSet struct {
	byName map[string]map[string]interface{}
}

func newSchemaSet() *schemaSet {
	return &schemaSet{byName: make(map[string]map[string]interface{})}
}

func (s *schemaSet) components() map[string]interface{} {
	out := make(map[string]interface{}, len(s.byName))
	for k, v := range s.byName {
		out[k] = v
	}
	return out
}

// ref registers v's type and returns a $ref to it. Non-struct values are
// inlined.
func (s *schemaSet) ref(v interface{}) map[string]interface{} {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType || t == uuidType {
		return s.schema(t)
	}
	name := schemaName(t)
	if _, ok := s.byName[name]; !ok {
		s.byName[name] = nil // guards recursive types
		s.byName[name] = s.object(t)
	}
	return map[string]interface{}{"$ref": "#/components/schemas/" + name}
}

func (s *schemaSet) schema(t reflect.Type) map[string]interface{} {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == timeType:
		return map[string]interface{}{"type": "string", "format": "date-time"}
	case t == uuidType:
		return map[string]interface{}{"type": "string", "format": "uuid"}
	}
	switch t.Kind() {
	case reflect.String:
		return map[string]interface{}{"type": "string"}
	case reflect.Bool:
		return map[string]interface{}{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]interface{}{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]interface{}{"type": "number"}
	case reflect.Slice, reflect.Array:
		return map[string]interface{}{"type": "array", "items": s.schema(t.Elem())}
	case reflect.Map:
		return map[string]interface{}{"type": "object", "additionalProperties": s.schema(t.Elem())}
	case reflect.Struct:
		return s.ref(reflect.New(t).Elem().Interface())
	}
	return map[string]interface{}{}
}

func (s *schemaSet) object(t reflect.Type) map[string]interface{} {
	props := make(map[string]interface{})
	var required []string
	s.collect(t, props, &required)

	out := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func (s *schemaSet) collect(t reflect.Type, props map[string]interface{}, required *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, skip := fieldName(f)
		if skip {
			continue
		}
		if f.Anonymous && f.Tag.Get("json") == "" {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				s.collect(ft, props, required)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}

		prop := s.schema(f.Type)
		rules := strings.Split(f.Tag.Get("validate"), ",")
		for _, r := range rules {
			switch {
			case r == "required":
				*required = append(*required, name)
			case strings.HasPrefix(r, "oneof="):
				prop = withEnum(prop, strings.Fields(strings.TrimPrefix(r, "oneof=")))
			}
		}
		props[name] = prop
	}
}

// schemaName qualifies the type name with its package so that types such as
// patient.CreateRequest and doctor.CreateRequest do not collide.
func schemaName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return path.Base(t.PkgPath()) + "." + t.Name()
}

// fieldName returns the JSON (or form) name of f.
func fieldName(f reflect.StructField) (string, bool) {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return f.Name, false
}

func withEnum(prop map[string]interface{}, values []string) map[string]interface{} {
	out := make(map[string]interface{}, len(prop)+1)
	for k, v := range prop {
		out[k] = v
	}
	enum := make([]interface{}, 0, len(values))
	for _, v := range values {
		if prop["type"] == "integer" {
			if n, err := strconv.Atoi(v); err == nil {
				enum = append(enum, n)
				continue
			}
		}
		enum = append(enum, v)
	}
	out["enum"] = enum
	return out
}
