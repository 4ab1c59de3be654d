package hubspot

// RecordDetails identifies the CRM record an event is attached to.
type RecordDetails struct {
	// ObjectType is the CRM object type (e.g. "contact"). It becomes the
	// schema's primary object when a schema is created.
	ObjectType string `json:"object_type"`
	// ObjectID is the CRM record id.
	ObjectID string `json:"object_id,omitempty"`
	// Email identifies a contact by email.
	Email string `json:"email,omitempty"`
	// UTK is the HubSpot tracking cookie value.
	UTK string `json:"utk,omitempty"`
}

// EventPayload is a fully mapped custom event.
type EventPayload struct {
	// EventName is the custom event name.
	EventName string `json:"event_name"`
	// OccurredAt is the event timestamp (ISO-8601).
	OccurredAt string `json:"occurred_at,omitempty"`
	// RecordDetails identifies the associated record.
	RecordDetails RecordDetails `json:"record_details"`
	// Properties holds the event properties. Null values are dropped.
	Properties map[string]any `json:"properties,omitempty"`
}

// Settings carries per-configuration options for a delivery.
type Settings struct {
	// ScopeID identifies the calling configuration. Without it the schema cache is bypassed.
	ScopeID string `json:"scope_id,omitempty"`
	// AccessToken overrides the configured token.
	AccessToken string `json:"access_token,omitempty"`
	// SyncMode overrides the configured sync mode.
	SyncMode string `json:"sync_mode,omitempty"`
}

// SchemaAction records how the event schema was reconciled.
type SchemaAction string

const (
	// ActionCached means the cached schema already matched.
	ActionCached SchemaAction = "cached"
	// ActionConfirmed means the remote schema already matched.
	ActionConfirmed SchemaAction = "confirmed"
	// ActionCreated means the schema was created.
	ActionCreated SchemaAction = "created"
	// ActionUpdated means missing properties were added.
	ActionUpdated SchemaAction = "updated"
)

// SendResult describes a delivered event.
type SendResult struct {
	EventName          string       `json:"event_name"`
	FullyQualifiedName string       `json:"fully_qualified_name"`
	SchemaAction       SchemaAction `json:"schema_action"`
	Status             int          `json:"status"`
}

// Wire types for the events API.

type remoteProperty struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Archived bool   `json:"archived"`
}

type eventDefinition struct {
	Name               string           `json:"name"`
	FullyQualifiedName string           `json:"fullyQualifiedName"`
	Archived           bool             `json:"archived"`
	PrimaryObject      string           `json:"primaryObject"`
	Properties         []remoteProperty `json:"properties"`
}

type propertyOption struct {
	Label        string `json:"label"`
	Value        bool   `json:"value"`
	Hidden       bool   `json:"hidden"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

type propertyDefinition struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Options     []propertyOption `json:"options,omitempty"`
}

type createEventDefinitionRequest struct {
	Label               string               `json:"label"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	PrimaryObject       string               `json:"primaryObject"`
	PropertyDefinitions []propertyDefinition `json:"propertyDefinitions"`
}

type eventCompletion struct {
	EventName  string         `json:"eventName"`
	ObjectID   string         `json:"objectId,omitempty"`
	Email      string         `json:"email,omitempty"`
	UTK        string         `json:"utk,omitempty"`
	OccurredAt string         `json:"occurredAt,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

type errorResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Category string `json:"category"`
}
