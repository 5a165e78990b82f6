// Package flight normalizes the heterogeneous flight records returned
// by the data provider (live position rows, historical summary rows,
// event rows) into one canonical key space, and derives status,
// recency, and display timezone from the result.
package flight

import (
	"reflect"
	"strings"
)

// Record is a reconciled flight record: a plain mapping keyed by the
// canonical field names.
type Record map[string]any

// Synonym lists for the canonical fields. Order matters: the first
// populated synonym wins.
var (
	originKeys   = []string{"orig_icao", "orig", "from_icao", "from"}
	destKeys     = []string{"dest_icao", "dest", "to_icao", "to"}
	landedKeys   = []string{"datetime_landed", "datetime_landing"}
	arrivalKeys  = []string{"datetime_arrival"}
	takeoffKeys  = []string{"datetime_takeoff", "first_seen"}
	movementKeys = []string{"datetime_takeoff", "first_seen", "last_seen"}
	flightIDKeys = []string{"fr24_id", "fr24Id", "id"}
)

// mergeKeys are the fields enrichment may fill in from a summary row.
var mergeKeys = []string{
	"datetime_landed", "datetime_landing", "datetime_arrival",
	"datetime_takeoff", "orig_icao", "orig", "dest_icao", "dest",
	"flight", "callsign", "flight_ended",
}

// Mapper is implemented by record types that can expose themselves as a
// plain mapping (the secondary serialization shape).
type Mapper interface {
	AsMap() map[string]any
}

// First reads the first populated field from a record, trying each key
// in order. Records may be plain mappings, structs (fields matched by
// json tag, then by name, case-insensitively), pointers to structs, or
// anything implementing Mapper. nil, empty strings, and empty
// sequences are treated as absent.
func First(rec any, keys ...string) any {
	for _, key := range keys {
		if v, ok := lookup(rec, key); ok && present(v) {
			return v
		}
	}
	return nil
}

// FirstString is First with the result coerced to a string; non-string
// values and absent fields come back as "".
func FirstString(rec any, keys ...string) string {
	if v, ok := First(rec, keys...).(string); ok {
		return v
	}
	return ""
}

// AsRecord produces a plain-mapping copy of any record shape. The
// source is never mutated; callers own the returned Record.
func AsRecord(rec any) Record {
	out := Record{}
	switch r := rec.(type) {
	case nil:
		return out
	case Record:
		for k, v := range r {
			out[k] = v
		}
		return out
	case map[string]any:
		for k, v := range r {
			out[k] = v
		}
		return out
	case map[string]string:
		for k, v := range r {
			out[k] = v
		}
		return out
	case Mapper:
		for k, v := range r.AsMap() {
			out[k] = v
		}
		return out
	}

	v := reflect.ValueOf(rec)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return out
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return out
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		out[fieldKey(f)] = v.Field(i).Interface()
	}
	return out
}

// lookup reads a single field from a record of arbitrary shape.
func lookup(rec any, key string) (any, bool) {
	switch r := rec.(type) {
	case nil:
		return nil, false
	case Record:
		v, ok := r[key]
		return v, ok
	case map[string]any:
		v, ok := r[key]
		return v, ok
	case map[string]string:
		v, ok := r[key]
		return v, ok
	}

	v := reflect.ValueOf(rec)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if strings.EqualFold(fieldKey(f), key) || strings.EqualFold(f.Name, key) {
				return v.Field(i).Interface(), true
			}
		}
	}

	// Secondary serialization shape, tried after direct access fails
	if m, ok := rec.(Mapper); ok {
		val, found := m.AsMap()[key]
		return val, found
	}
	return nil, false
}

// fieldKey returns the mapping key for a struct field: the json tag
// name when present, else the field name.
func fieldKey(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

// present reports whether a value counts as populated. Empty strings
// and empty sequences do not; a false boolean does.
func present(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return val != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
