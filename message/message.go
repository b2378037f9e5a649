// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package message parses JSON or TOML configuration files into Go structs
// using struct tags for field names, required fields, default values and the
// allowed choices of string values.
package message

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"

	toml "github.com/pelletier/go-toml/v2"
)

// Message is a configuration object, typically a struct pointer, initialized
// from a generic decoded JSON or TOML value. A typical implementation:
//
//	type Sample struct {
//	  Size int     `json:"size" required:"true"`
//	  Seed int     `json:"seed" default:"42"`
//	  Dist string  `json:"distribution" default:"normal" choices:"normal,t"`
//	  Data *Source `json:"data"` // nested Message
//	}
//
//	func (s *Sample) InitMessage(js any) error {
//	  return message.Init(s, js)
//	}
type Message interface {
	// InitMessage validates and assigns the fields from js, which is normally
	// a map[string]any. Nested Messages are initialized recursively.
	InitMessage(js any) error
}

var messageType = reflect.TypeOf((*Message)(nil)).Elem()

// Init assigns the fields of the struct pointed to by m from the map js:
//
//   - the key of a field is its `json` tag name, or the field name;
//     `json:"-"` and unexported fields are skipped;
//   - a missing field with `required:"true"` is an error, otherwise it gets
//     the value of its `default` tag, or the zero value;
//   - a string field with a `choices:"a,b,c"` tag must have one of the values;
//   - keys not matching any field are an error.
//
// Numbers may come as float64 (JSON) or int64 (TOML). Integer fields reject
// non-integral values.
func Init(m Message, js any) error {
	rt := reflect.TypeOf(m)
	if rt == nil || rt.Kind() != reflect.Ptr || rt.Elem().Kind() != reflect.Struct {
		return errors.Reason("message must be a struct pointer, got %v", rt)
	}
	jsMap, ok := js.(map[string]any)
	if !ok {
		return errors.Reason("expected an object, got %T", js)
	}
	st := rt.Elem()
	sv := reflect.ValueOf(m).Elem()
	seen := make(map[string]bool)
	var missing []string
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		name, ok := fieldName(f)
		if !ok {
			continue
		}
		var v reflect.Value
		var err error
		if jv, found := jsMap[name]; found {
			seen[name] = true
			if v, err = decode(jv, f.Type); err != nil {
				return errors.Annotate(err, "invalid value for %s", name)
			}
		} else if f.Tag.Get("required") == "true" {
			missing = append(missing, name)
			continue
		} else if def, hasDefault := f.Tag.Lookup("default"); hasDefault {
			if v, err = parseDefault(def, f.Type); err != nil {
				return errors.Annotate(err, "invalid default for %s", name)
			}
		} else if v, err = decode(nil, f.Type); err != nil {
			return errors.Annotate(err, "failed to create zero value for %s", name)
		}
		if err := checkChoices(f, v); err != nil {
			return err
		}
		sv.Field(i).Set(v)
	}
	if len(missing) > 0 {
		return errors.Reason("missing required fields for %s: %s",
			st.Name(), strings.Join(missing, ", "))
	}
	var unknown []string
	for k := range jsMap {
		if !seen[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return errors.Reason("unsupported fields for %s: %s",
			st.Name(), strings.Join(unknown, ", "))
	}
	return nil
}

func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	name := strings.Split(f.Tag.Get("json"), ",")[0]
	switch name {
	case "-":
		return "", false
	case "":
		return f.Name, true
	}
	return name, true
}

func checkChoices(f reflect.StructField, v reflect.Value) error {
	choices, ok := f.Tag.Lookup("choices")
	if !ok {
		return nil
	}
	if v.Kind() != reflect.String {
		return errors.Reason("choices apply only to strings, field %s is %s", f.Name, v.Kind())
	}
	if !StringIn(v.String(), strings.Split(choices, ",")...) {
		return errors.Reason("value for %s is not in its choice list: '%s'", f.Name, v.String())
	}
	return nil
}

// initMessage creates a new value of the pointer type pt and calls its
// InitMessage.
func initMessage(js any, pt reflect.Type) (reflect.Value, error) {
	ptr := reflect.New(pt.Elem())
	if err := ptr.Interface().(Message).InitMessage(js); err != nil {
		return reflect.Value{}, errors.Annotate(err, "failed to init %s", pt.Elem().Name())
	}
	return ptr, nil
}

func number(js any) (float64, bool) {
	switch x := js.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}

// decode converts a generic decoded value into the type t. A nil js yields the
// zero value, except for value types implementing Message through a pointer,
// which are initialized from an empty object to get their defaults.
func decode(js any, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.Ptr && t.Implements(messageType) {
		if js == nil {
			return reflect.Zero(t), nil
		}
		return initMessage(js, t)
	}
	if pt := reflect.PtrTo(t); t.Kind() != reflect.Ptr && pt.Implements(messageType) {
		if js == nil {
			js = map[string]any{}
		}
		ptr, err := initMessage(js, pt)
		if err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
	if js == nil {
		return reflect.Zero(t), nil
	}
	switch t.Kind() {
	case reflect.Ptr:
		v, err := decode(js, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	case reflect.Bool:
		if b, ok := js.(bool); ok {
			return reflect.ValueOf(b), nil
		}
		return reflect.Value{}, errors.Reason("not a bool: %v", js)
	case reflect.Int:
		x, ok := number(js)
		if !ok || x != math.Trunc(x) {
			return reflect.Value{}, errors.Reason("not an integer: %v", js)
		}
		return reflect.ValueOf(int(x)), nil
	case reflect.Float64:
		if x, ok := number(js); ok {
			return reflect.ValueOf(x), nil
		}
		return reflect.Value{}, errors.Reason("not a number: %v", js)
	case reflect.String:
		if s, ok := js.(string); ok {
			return reflect.ValueOf(s), nil
		}
		return reflect.Value{}, errors.Reason("not a string: %v", js)
	case reflect.Slice:
		list, ok := js.([]any)
		if !ok {
			return reflect.Value{}, errors.Reason("not a list: %v", js)
		}
		res := reflect.MakeSlice(t, len(list), len(list))
		for i, x := range list {
			v, err := decode(x, t.Elem())
			if err != nil {
				return reflect.Value{}, errors.Annotate(err, "element %d", i)
			}
			res.Index(i).Set(v)
		}
		return res, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return reflect.Value{}, errors.Reason("map keys must be strings, not %s", t.Key())
		}
		obj, ok := js.(map[string]any)
		if !ok {
			return reflect.Value{}, errors.Reason("not an object: %v", js)
		}
		res := reflect.MakeMapWithSize(t, len(obj))
		for k, x := range obj {
			v, err := decode(x, t.Elem())
			if err != nil {
				return reflect.Value{}, errors.Annotate(err, "key %s", k)
			}
			res.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), v)
		}
		return res, nil
	}
	return reflect.Value{}, errors.Reason("unsupported type: %s", t)
}

func parseDefault(s string, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Ptr:
		v, err := parseDefault(s, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, errors.Annotate(err, "invalid bool: %s", s)
		}
		return reflect.ValueOf(b), nil
	case reflect.Int:
		x, err := strconv.Atoi(s)
		if err != nil {
			return reflect.Value{}, errors.Annotate(err, "invalid int: %s", s)
		}
		return reflect.ValueOf(x), nil
	case reflect.Float64:
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return reflect.Value{}, errors.Annotate(err, "invalid float64: %s", s)
		}
		return reflect.ValueOf(x), nil
	case reflect.String:
		return reflect.ValueOf(s), nil
	}
	return reflect.Value{}, errors.Reason("default values not supported for %s", t)
}

// Parse the data in the given format ("json" or "toml") into m.
func Parse(m Message, data []byte, format string) error {
	var js any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &js); err != nil {
			return errors.Annotate(err, "failed to decode JSON")
		}
	case "toml":
		obj := map[string]any{}
		if err := toml.Unmarshal(data, &obj); err != nil {
			return errors.Annotate(err, "failed to decode TOML")
		}
		js = obj
	default:
		return errors.Reason("unsupported format: '%s'", format)
	}
	return m.InitMessage(js)
}

// FromFile reads m from a file. Files with the ".toml" extension are parsed as
// TOML, everything else as JSON.
func FromFile(m Message, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Annotate(err, "failed to read %s", path)
	}
	format := "json"
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		format = "toml"
	}
	if err := Parse(m, data, format); err != nil {
		return errors.Annotate(err, "failed to parse %s", path)
	}
	return nil
}

// StringIn checks that s equals one of the values.
func StringIn(s string, values ...string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
