package reconcile

import "time"

// PropertyType is the reconciliation type of an event property.
type PropertyType string

const (
	// TypeNumber is a JSON number.
	TypeNumber PropertyType = "number"
	// TypeBoolean is a JSON boolean.
	TypeBoolean PropertyType = "boolean"
	// TypeString is a JSON string; see StringFormat for its sub-format.
	TypeString PropertyType = "string"
	// TypeObject is a JSON object or array. It is sent as a serialized string
	// but keeps its own type for reconciliation.
	TypeObject PropertyType = "object"
)

// StringFormat refines TypeString.
type StringFormat string

const (
	// FormatString is a plain string.
	FormatString StringFormat = "string"
	// FormatDate is an ISO-8601 calendar date (YYYY-MM-DD).
	FormatDate StringFormat = "date"
	// FormatDatetime is an ISO-8601 timestamp.
	FormatDatetime StringFormat = "datetime"
)

// PropertyDescriptor describes a single schema property.
type PropertyDescriptor struct {
	// Type is the property type.
	Type PropertyType `json:"type"`

	// StringFormat is set only for TypeString.
	StringFormat StringFormat `json:"string_format,omitempty"`
}

// IsTemporal reports whether the descriptor is a date or datetime string.
func (d PropertyDescriptor) IsTemporal() bool {
	return d.Type == TypeString && (d.StringFormat == FormatDate || d.StringFormat == FormatDatetime)
}

// Schema is the desired or known shape of a remote event definition.
type Schema struct {
	// Name is the event name as supplied by the caller (or as named remotely).
	Name string `json:"name"`

	// PrimaryObjectType is the CRM object the event is associated with (e.g. "CONTACT").
	PrimaryObjectType string `json:"primary_object_type"`

	// Properties maps property names to their descriptors.
	Properties map[string]PropertyDescriptor `json:"properties"`
}

// Clone returns a deep copy of s.
func (s Schema) Clone() Schema {
	props := make(map[string]PropertyDescriptor, len(s.Properties))
	for name, d := range s.Properties {
		props[name] = d
	}
	s.Properties = props
	return s
}

// CachedSchema is a Schema confirmed to exist remotely.
type CachedSchema struct {
	Schema

	// FullyQualifiedName is the remote identifier used when sending events.
	FullyQualifiedName string `json:"fully_qualified_name"`
}

// Names reports whether the cached schema answers to the given event name.
func (c CachedSchema) Names(name string) bool {
	return c.Name == name || c.FullyQualifiedName == name
}

// MatchKind classifies a SchemaDiff.
type MatchKind string

const (
	// FullMatch means every desired property exists with a compatible type.
	FullMatch MatchKind = "full_match"
	// PropertiesMissing means the schema exists but lacks some desired properties.
	PropertiesMissing MatchKind = "properties_missing"
	// NoMatch means there was nothing to compare against.
	NoMatch MatchKind = "no_match"
	// Mismatch means an existing property's type conflicts irreconcilably.
	Mismatch MatchKind = "mismatch"
)

// SchemaDiff is the result of comparing a desired schema to a known one.
type SchemaDiff struct {
	// Match is the overall classification.
	Match MatchKind `json:"match"`

	// MissingProperties holds desired properties absent from the known schema.
	MissingProperties map[string]PropertyDescriptor `json:"missing_properties"`

	// StringifiedProperties lists desired number properties declared as plain
	// strings in the known schema. Their values must be sent as strings.
	StringifiedProperties []string `json:"stringified_properties,omitempty"`
}

// CacheConfig configures the schema cache.
type CacheConfig struct {
	// MaxEntries bounds the number of cached schemas (least recently used evicted first).
	MaxEntries int `mapstructure:"max_entries" default:"2000"`
	// TTL is the lifetime of a cached schema.
	TTL time.Duration `mapstructure:"ttl" default:"1h"`
}
