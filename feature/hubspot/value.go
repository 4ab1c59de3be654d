package hubspot

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"destination-sync/core/reconcile"
)

var (
	datetimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}(:?\d{2})?)?$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValueKind tags a PropertyValue.
type ValueKind int

const (
	KindNumber ValueKind = iota + 1
	KindBool
	KindString
	KindObject
)

// PropertyValue is an event property value with its type fixed at the boundary.
type PropertyValue struct {
	kind   ValueKind
	number float64
	raw    string // original number text, when known
	flag   bool
	str    string
	format reconcile.StringFormat
	object any
}

// NewPropertyValue converts a decoded JSON value. It reports false for null.
func NewPropertyValue(v any) (PropertyValue, bool) {
	switch val := v.(type) {
	case nil:
		return PropertyValue{}, false
	case bool:
		return PropertyValue{kind: KindBool, flag: val}, true
	case float64:
		return PropertyValue{kind: KindNumber, number: val}, true
	case float32:
		return PropertyValue{kind: KindNumber, number: float64(val)}, true
	case int:
		return PropertyValue{kind: KindNumber, number: float64(val), raw: strconv.Itoa(val)}, true
	case int64:
		return PropertyValue{kind: KindNumber, number: float64(val), raw: strconv.FormatInt(val, 10)}, true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return PropertyValue{kind: KindString, str: val.String(), format: reconcile.FormatString}, true
		}
		return PropertyValue{kind: KindNumber, number: f, raw: val.String()}, true
	case string:
		return PropertyValue{kind: KindString, str: val, format: InferStringFormat(val)}, true
	default:
		return PropertyValue{kind: KindObject, object: val}, true
	}
}

// Kind returns the value's tag.
func (v PropertyValue) Kind() ValueKind {
	return v.kind
}

// Descriptor returns the schema descriptor for the value.
func (v PropertyValue) Descriptor() reconcile.PropertyDescriptor {
	switch v.kind {
	case KindNumber:
		return reconcile.PropertyDescriptor{Type: reconcile.TypeNumber}
	case KindBool:
		return reconcile.PropertyDescriptor{Type: reconcile.TypeBoolean}
	case KindString:
		return reconcile.PropertyDescriptor{Type: reconcile.TypeString, StringFormat: v.format}
	default:
		return reconcile.PropertyDescriptor{Type: reconcile.TypeObject}
	}
}

// Wire returns the value as sent to HubSpot. Objects are JSON-encoded strings.
// With asString, numbers are sent as their decimal string form.
func (v PropertyValue) Wire(asString bool) any {
	switch v.kind {
	case KindNumber:
		if !asString {
			return v.number
		}
		if v.raw != "" {
			return v.raw
		}
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindBool:
		return v.flag
	case KindString:
		return v.str
	default:
		b, err := json.Marshal(v.object)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// InferStringFormat classifies a string as datetime, date or plain string.
// The datetime pattern is tried first, then the date-only pattern.
func InferStringFormat(s string) reconcile.StringFormat {
	s = strings.TrimSpace(s)
	if datetimePattern.MatchString(s) {
		return reconcile.FormatDatetime
	}
	if datePattern.MatchString(s) {
		if _, err := time.Parse("2006-01-02", s); err == nil {
			return reconcile.FormatDate
		}
	}
	return reconcile.FormatString
}

// BuildSchema converts a payload's properties and infers the desired schema.
func BuildSchema(payload EventPayload) (map[string]PropertyValue, reconcile.Schema) {
	values := make(map[string]PropertyValue, len(payload.Properties))
	schema := reconcile.Schema{
		Name:              payload.EventName,
		PrimaryObjectType: payload.RecordDetails.ObjectType,
		Properties:        make(map[string]reconcile.PropertyDescriptor, len(payload.Properties)),
	}

	for name, raw := range payload.Properties {
		v, ok := NewPropertyValue(raw)
		if !ok {
			continue
		}
		values[name] = v
		schema.Properties[name] = v.Descriptor()
	}
	return values, schema
}

// wireProperties renders values for the send call.
func wireProperties(values map[string]PropertyValue, stringified []string) map[string]any {
	if len(values) == 0 {
		return nil
	}
	asString := make(map[string]bool, len(stringified))
	for _, name := range stringified {
		asString[name] = true
	}

	out := make(map[string]any, len(values))
	for name, v := range values {
		out[name] = v.Wire(asString[name])
	}
	return out
}

// signature identifies a desired schema for in-flight deduplication.
func signature(s reconcile.Schema) string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, name := range sortedNames(s.Properties) {
		d := s.Properties[name]
		b.WriteString("|")
		b.WriteString(name)
		b.WriteString(":")
		b.WriteString(string(d.Type))
		if d.StringFormat != "" {
			b.WriteString(":")
			b.WriteString(string(d.StringFormat))
		}
	}
	return b.String()
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
