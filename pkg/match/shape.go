package match

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ShapeMode selects how a structural pattern is decided.
type ShapeMode int

const (
	// FullShape requires every declared key to match.
	FullShape ShapeMode = iota
	// FirstKey accepts the subject as soon as one declared key matches.
	FirstKey
)

// Options tune classification. The zero value is the default behaviour.
type Options struct {
	Shapes ShapeMode
}

func matchShape(shape map[string]any, subject any, mode ShapeMode) bool {
	if IsNil(subject) {
		return false
	}
	if len(shape) == 0 {
		return true
	}

	for key, want := range shape {
		got, found := property(subject, key)
		ok := found && sameProperty(want, got, mode)
		if mode == FirstKey && ok {
			return true
		}
		if mode == FullShape && !ok {
			return false
		}
	}
	return mode == FullShape
}

func sameProperty(want, got any, mode ShapeMode) bool {
	if nested, is := want.(map[string]any); is {
		return matchShape(nested, got, mode)
	}
	return sameValue(want, got)
}

// property reads key from maps, structs and JSON documents.
func property(subject any, key string) (any, bool) {
	if doc, is := jsonText(subject); is {
		r := gjson.GetBytes(doc, key)
		if !r.Exists() {
			return nil, false
		}
		return jsonValue(r), true
	}

	rv := reflect.ValueOf(subject)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("match"); ok {
				tag, _, _ = strings.Cut(tag, ",")
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			if name == key {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

// jsonText recognises subjects holding a JSON object.
func jsonText(subject any) ([]byte, bool) {
	var b []byte
	switch t := subject.(type) {
	case json.RawMessage:
		b = t
	case []byte:
		b = t
	case string:
		if !strings.HasPrefix(strings.TrimSpace(t), "{") {
			return nil, false
		}
		b = []byte(t)
	default:
		return nil, false
	}
	if !bytes.HasPrefix(bytes.TrimSpace(b), []byte("{")) || !gjson.ValidBytes(b) {
		return nil, false
	}
	return b, true
}

// jsonValue keeps integers exact and objects as raw JSON so nested shapes
// are read with gjson too.
func jsonValue(r gjson.Result) any {
	switch {
	case r.Type == gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(r.Raw, 10, 64); err == nil {
			return u
		}
		return r.Float()
	case r.IsObject():
		return json.RawMessage(r.Raw)
	}
	return r.Value()
}

// sameValue is Equal, except that numbers compare by value whatever their
// Go type. Integers are compared exactly.
func sameValue(a, b any) bool {
	x, okx := exactNumber(a)
	y, oky := exactNumber(b)
	if okx && oky {
		return x.Cmp(y) == 0
	}
	return Equal(a, b)
}

func exactNumber(v any) (*big.Float, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Float).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Float).SetUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return nil, false
		}
		return new(big.Float).SetFloat64(f), true
	}
	return nil, false
}

// Equal is strict equality: both values must have the same comparable
// dynamic type and be ==. Values of incomparable types are never equal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	defer func() { _ = recover() }()
	return a == b
}
