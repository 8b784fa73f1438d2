package form

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/Veraticus/ledgerdeck/internal/common"
)

// Kind is the input widget a field needs.
type Kind int

// Field kinds.
const (
	KindText Kind = iota
	KindNumber
	KindBool
	KindChoice
	KindList
	KindJSON
)

// Field describes one editable draft attribute.
type Field struct {
	Name     string // JSON name, dotted for nested structs
	Label    string
	Choices  []string
	index    []int
	Kind     Kind
	Required bool
}

// describe lists the editable fields of the draft struct type t.
func describe(t reflect.Type) []Field {
	var fields []Field
	walk(t, nil, "", &fields)
	return fields
}

func walk(t reflect.Type, index []int, prefix string, out *[]Field) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := jsonName(sf)
		if name == "-" {
			continue
		}
		path := append(append([]int(nil), index...), i)
		if prefix != "" {
			name = prefix + "." + name
		}

		if sf.Type.Kind() == reflect.Struct {
			walk(sf.Type, path, name, out)
			continue
		}

		rules := sf.Tag.Get("validate")
		f := Field{
			Name:     name,
			Label:    sf.Tag.Get("label"),
			index:    path,
			Kind:     kindOf(sf.Type),
			Required: hasRule(rules, "required"),
		}
		if f.Label == "" {
			f.Label = name
		}
		if choices := oneOf(rules); len(choices) > 0 && f.Kind == KindText {
			f.Kind = KindChoice
			f.Choices = choices
		}
		*out = append(*out, f)
	}
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}
	return name
}

func kindOf(t reflect.Type) Kind {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return KindNumber
	case reflect.Bool:
		return KindBool
	case reflect.Slice:
		return KindList
	case reflect.Map:
		return KindJSON
	default:
		return KindText
	}
}

func hasRule(rules, rule string) bool {
	for _, r := range strings.Split(rules, ",") {
		if r == rule {
			return true
		}
	}
	return false
}

// oneOf extracts the values of a oneof rule, honoring single-quoted values.
func oneOf(rules string) []string {
	idx := strings.Index(rules, "oneof=")
	if idx < 0 {
		return nil
	}
	rest := rules[idx+len("oneof="):]
	var values []string
	for rest != "" {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" || rest[0] == ',' {
			break
		}
		if rest[0] == '\'' {
			end := strings.IndexByte(rest[1:], '\'')
			if end < 0 {
				values = append(values, rest[1:])
				break
			}
			values = append(values, rest[1:end+1])
			rest = rest[end+2:]
			continue
		}
		end := strings.IndexAny(rest, " ,")
		if end < 0 {
			values = append(values, rest)
			break
		}
		values = append(values, rest[:end])
		rest = rest[end:]
	}
	return values
}

// assign parses value into the draft field.
func assign(draft reflect.Value, f Field, value string) error {
	target := draft.FieldByIndex(f.index)
	value = strings.TrimSpace(value)

	switch f.Kind {
	case KindNumber:
		return assignNumber(target, f, value)
	case KindBool:
		if value == "" {
			target.SetBool(false)
			return nil
		}
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Label, err)
		}
		target.SetBool(b)
	case KindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		target.Set(reflect.ValueOf(items))
	case KindJSON:
		if value == "" {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		obj := reflect.New(target.Type())
		if err := json.Unmarshal([]byte(value), obj.Interface()); err != nil {
			return fmt.Errorf("%s must be a JSON object: %w", f.Label, err)
		}
		target.Set(obj.Elem())
	default:
		target.SetString(value)
	}
	return nil
}

func assignNumber(target reflect.Value, f Field, value string) error {
	if value == "" {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number: %w", f.Label, common.ErrInvalidInput)
	}
	if target.Kind() == reflect.Pointer {
		ptr := reflect.New(target.Type().Elem())
		ptr.Elem().SetFloat(n)
		target.Set(ptr)
		return nil
	}
	target.SetFloat(n)
	return nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "y", "yes", "on":
		return true, nil
	case "n", "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%q is not a yes/no value: %w", value, common.ErrInvalidInput)
	}
	return b, nil
}

// display renders the draft field as editable text.
func display(draft reflect.Value, f Field) string {
	v := draft.FieldByIndex(f.index)
	switch f.Kind {
	case KindNumber:
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return ""
			}
			v = v.Elem()
		}
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindList:
		items := make([]string, v.Len())
		for i := range items {
			items[i] = v.Index(i).String()
		}
		return strings.Join(items, ", ")
	case KindJSON:
		if v.IsNil() || v.Len() == 0 {
			return ""
		}
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return v.String()
	}
}
